package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/domain/repository"
)

const (
	dataField      = "data"
	readBatchSize  = 10
	readRetryDelay = time.Second
)

type streamRepository struct {
	client    *redis.Client
	logger    *zap.Logger
	blockTime time.Duration
}

// NewStreamRepository создает StreamRepository поверх Redis Streams.
// blockTime - сколько XReadGroup ждёт новых сообщений, 0 означает 1 секунду.
func NewStreamRepository(client *redis.Client, blockTime time.Duration, logger *zap.Logger) repository.StreamRepository {
	if blockTime <= 0 {
		blockTime = time.Second
	}
	return &streamRepository{
		client:    client,
		logger:    logger,
		blockTime: blockTime,
	}
}

// CreateConsumerGroup создаёт consumer group, стрим создаётся при необходимости
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err == nil {
		r.logger.Info("Consumer group created",
			zap.String("stream", stream),
			zap.String("group", group))
		return nil
	}
	if strings.HasPrefix(err.Error(), "BUSYGROUP") {
		r.logger.Debug("Consumer group already exists",
			zap.String("stream", stream),
			zap.String("group", group))
		return nil
	}

	r.logger.Error("Failed to create consumer group",
		zap.String("stream", stream),
		zap.String("group", group),
		zap.Error(err))
	return fmt.Errorf("failed to create consumer group: %w", err)
}

// ConsumeStream читает новые сообщения группы, пока не отменён ctx
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	if stream == "" || group == "" || consumer == "" {
		return nil, errors.New("stream, group and consumer are required")
	}

	out := make(chan domain.StreamMessage, readBatchSize)

	go func() {
		defer close(out)
		defer r.logger.Info("Stream consumer stopped",
			zap.String("stream", stream),
			zap.String("consumer", consumer))

		for ctx.Err() == nil {
			streams, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    readBatchSize,
				Block:    r.blockTime,
			}).Result()

			switch {
			case errors.Is(err, redis.Nil):
				continue
			case err != nil:
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))
				if !sleepCtx(ctx, readRetryDelay) {
					return
				}
				continue
			}

			if !r.forward(ctx, streams, out) {
				return
			}
		}
	}()

	return out, nil
}

func (r *streamRepository) forward(ctx context.Context, streams []redis.XStream, out chan<- domain.StreamMessage) bool {
	for _, s := range streams {
		for _, msg := range s.Messages {
			data, ok := msg.Values[dataField].(string)
			if !ok {
				r.logger.Warn("Message without data field",
					zap.String("stream", s.Stream),
					zap.String("message_id", msg.ID))
				continue
			}

			select {
			case out <- domain.StreamMessage{ID: msg.ID, Data: data}:
			case <-ctx.Done():
				return false
			}
		}
	}
	return true
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}
	return nil
}

// PublishToStream кладёт JSON-представление data в поле "data"
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{dataField: string(payload)},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
