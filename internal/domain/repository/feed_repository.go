package repository

import (
	"context"
	"encoding/json"

	"github.com/seeuferweg-catalog/internal/domain"
)

// FeedRepository - доступ к сырым документам региональных фидов
type FeedRepository interface {
	// Sources возвращает настроенные источники
	Sources() []domain.Source

	// Fetch загружает документ фида целиком
	Fetch(ctx context.Context, source domain.Source) (json.RawMessage, error)
}
