package redis

import (
	"context"

	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/domain/repository"
)

type eventPublisher struct {
	streams repository.StreamRepository
	stream  string
}

// NewEventPublisher публикует изменения избранного в Redis Stream
func NewEventPublisher(streams repository.StreamRepository) repository.EventPublisher {
	return &eventPublisher{
		streams: streams,
		stream:  domain.StreamFavoritesChanged,
	}
}

func (p *eventPublisher) PublishFavoritesChanged(ctx context.Context, event domain.FavoritesChangedEvent) error {
	return p.streams.PublishToStream(ctx, p.stream, event)
}
