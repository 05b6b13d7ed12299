package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/domain/repository"
)

type favoritesRepository struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewFavoritesRepository хранит избранное JSON-массивом под ключом key
func NewFavoritesRepository(r *Redis, key string) repository.FavoritesRepository {
	return &favoritesRepository{
		client: r.Client(),
		key:    key,
		logger: r.logger,
	}
}

func (r *favoritesRepository) Load(ctx context.Context) ([]string, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []string{}, nil
	}
	if err != nil {
		r.logger.Error("Failed to load favorites", zap.String("key", r.key), zap.Error(err))
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(val, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *favoritesRepository) Save(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		r.logger.Error("Failed to save favorites", zap.String("key", r.key), zap.Error(err))
		return fmt.Errorf("redis set error: %w", err)
	}

	r.logger.Debug("Favorites saved", zap.String("key", r.key), zap.Int("count", len(ids)))
	return nil
}
