package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/domain/repository"
)

const favoritesSchema = `
CREATE TABLE IF NOT EXISTS favorites (
	storage_key TEXT PRIMARY KEY,
	ids         TEXT[] NOT NULL DEFAULT '{}',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type favoritesRepository struct {
	db     *sqlx.DB
	key    string
	logger *zap.Logger
}

// NewFavoritesRepository хранит избранное строкой таблицы favorites с ключом key
func NewFavoritesRepository(db *DB, key string) repository.FavoritesRepository {
	return &favoritesRepository{
		db:     db.DB,
		key:    key,
		logger: db.logger,
	}
}

// EnsureSchema создаёт таблицу favorites, если её нет
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, favoritesSchema); err != nil {
		return fmt.Errorf("failed to create favorites table: %w", err)
	}
	return nil
}

func (r *favoritesRepository) Load(ctx context.Context) ([]string, error) {
	var ids pq.StringArray
	err := r.db.GetContext(ctx, &ids, `SELECT ids FROM favorites WHERE storage_key = $1`, r.key)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		r.logger.Error("Failed to load favorites", zap.String("key", r.key), zap.Error(err))
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	if ids == nil {
		return []string{}, nil
	}
	return []string(ids), nil
}

func (r *favoritesRepository) Save(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	query := `
		INSERT INTO favorites (storage_key, ids, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (storage_key)
		DO UPDATE SET ids = EXCLUDED.ids, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, r.key, pq.Array(ids)); err != nil {
		r.logger.Error("Failed to save favorites", zap.String("key", r.key), zap.Error(err))
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}
