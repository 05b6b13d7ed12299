package memory

import (
	"context"
	"sync"

	"github.com/seeuferweg-catalog/internal/domain/repository"
)

// FavoritesRepository держит избранное в памяти процесса, для тестов и FAVORITES_BACKEND=memory
type FavoritesRepository struct {
	mu    sync.RWMutex
	ids   []string
	saves int
}

var _ repository.FavoritesRepository = (*FavoritesRepository)(nil)

func NewFavoritesRepository(initial ...string) *FavoritesRepository {
	return &FavoritesRepository{ids: append([]string{}, initial...)}
}

func (r *FavoritesRepository) Load(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.ids...), nil
}

func (r *FavoritesRepository) Save(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append([]string{}, ids...)
	r.saves++
	return nil
}

// Saves - сколько раз вызывался Save
func (r *FavoritesRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
