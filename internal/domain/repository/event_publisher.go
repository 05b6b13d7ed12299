package repository

import (
	"context"

	"github.com/seeuferweg-catalog/internal/domain"
)

// EventPublisher рассылает уведомления об изменении избранного
type EventPublisher interface {
	PublishFavoritesChanged(ctx context.Context, event domain.FavoritesChangedEvent) error
}
