package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/config"
	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/domain/repository"
)

// messageKey - все события избранного в одну партицию, чтобы сохранить порядок
const messageKey = "favorites"

// Publisher отправляет изменения избранного в топик Kafka
type Publisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

var _ repository.EventPublisher = (*Publisher)(nil)

// NewPublisher создаёт продюсер для KAFKA_FAVORITES_TOPIC
func NewPublisher(cfg *config.KafkaConfig, logger *zap.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

func (p *Publisher) PublishFavoritesChanged(ctx context.Context, event domain.FavoritesChangedEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish favorites event",
			zap.String("topic", p.writer.Topic),
			zap.Error(err))
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func serializeToMessage(event domain.FavoritesChangedEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize favorites event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(messageKey),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("favorites_changed")},
			{Key: "count", Value: []byte(strconv.Itoa(event.Count))},
			{Key: "changed_at", Value: []byte(event.ChangedAt.Format(time.RFC3339))},
		},
	}, nil
}
