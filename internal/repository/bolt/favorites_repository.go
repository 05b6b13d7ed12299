package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/domain/repository"
)

var favoritesBucket = []byte("favorites")

// Store - файл bbolt с избранным. Значение под ключом хранится JSON-массивом,
// так же как в браузерном localStorage.
type Store struct {
	db     *bolt.DB
	logger *zap.Logger
}

// Open открывает (или создаёт) файл базы и бакет favorites
func Open(path string, logger *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bolt dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(favoritesBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create favorites bucket: %w", err)
	}

	logger.Info("BoltDB opened", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	s.logger.Info("Closing BoltDB")
	return s.db.Close()
}

type favoritesRepository struct {
	store *Store
	key   []byte
}

// NewFavoritesRepository - репозиторий избранного под ключом key
func NewFavoritesRepository(store *Store, key string) repository.FavoritesRepository {
	return &favoritesRepository{store: store, key: []byte(key)}
}

func (r *favoritesRepository) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []byte
	err := r.store.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(favoritesBucket).Get(r.key); v != nil {
			// значение валидно только внутри транзакции
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}
	if raw == nil {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *favoritesRepository) Save(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	return r.store.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(favoritesBucket)
		if err != nil {
			return err
		}
		return bucket.Put(r.key, data)
	})
}
