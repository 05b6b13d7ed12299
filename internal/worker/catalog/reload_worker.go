package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/domain/repository"
	"github.com/seeuferweg-catalog/internal/worker"
)

// Loader - перезагружаемый каталог
type Loader interface {
	Load(ctx context.Context) (int, error)
}

// ReloadWorker перезагружает каталог по сообщениям из stream:catalog:reload
// и, если задан interval, по таймеру
type ReloadWorker struct {
	*worker.BaseWorker
	streams      repository.StreamRepository
	loader       Loader
	clock        clockwork.Clock
	interval     time.Duration
	consumerName string
}

// NewReloadWorker создает ReloadWorker. streams == nil отключает чтение стрима,
// interval <= 0 отключает периодическую перезагрузку
func NewReloadWorker(
	streams repository.StreamRepository,
	loader Loader,
	clock clockwork.Clock,
	interval time.Duration,
	consumerGroup string,
	logger *zap.Logger,
) *ReloadWorker {
	hostname, _ := os.Hostname()

	return &ReloadWorker{
		BaseWorker:   worker.NewBaseWorker("catalog-reload", consumerGroup, logger),
		streams:      streams,
		loader:       loader,
		clock:        clock,
		interval:     interval,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
	}
}

// Start блокируется до Stop или отмены ctx
func (w *ReloadWorker) Start(ctx context.Context) error {
	logger := w.Logger()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var messages <-chan domain.StreamMessage
	if w.streams != nil {
		if err := w.streams.CreateConsumerGroup(ctx, domain.StreamCatalogReload, w.ConsumerGroup()); err != nil {
			return fmt.Errorf("failed to create consumer group: %w", err)
		}
		msgs, err := w.streams.ConsumeStream(ctx, domain.StreamCatalogReload, w.ConsumerGroup(), w.consumerName)
		if err != nil {
			return fmt.Errorf("failed to consume %s: %w", domain.StreamCatalogReload, err)
		}
		messages = msgs
	}

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := w.clock.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.Chan()
	}

	logger.Info("Catalog reload worker started",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Bool("stream", messages != nil),
		zap.Duration("interval", w.interval))

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			return ctx.Err()

		case <-tick:
			w.reload(ctx, "interval")

		case msg, ok := <-messages:
			if !ok {
				// стрим закрыт, остаётся только таймер
				messages = nil
				if tick == nil {
					return nil
				}
				continue
			}
			w.handleMessage(ctx, msg)
		}
	}
}

func (w *ReloadWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	var event domain.CatalogReloadEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		w.Logger().Warn("Malformed reload request, acknowledging",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	} else {
		reason := event.Reason
		if reason == "" {
			reason = "stream"
		}
		w.reload(ctx, reason)
	}

	if err := w.streams.AckMessage(ctx, domain.StreamCatalogReload, w.ConsumerGroup(), msg.ID); err != nil {
		w.Logger().Error("Failed to ack reload request",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	}
}

func (w *ReloadWorker) reload(ctx context.Context, reason string) {
	total, err := w.loader.Load(ctx)
	if err != nil {
		w.Logger().Error("Catalog reload failed", zap.String("reason", reason), zap.Error(err))
		return
	}
	w.Logger().Info("Catalog reloaded", zap.String("reason", reason), zap.Int("pois", total))
}
