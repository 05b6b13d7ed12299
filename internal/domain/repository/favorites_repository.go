package repository

import "context"

// FavoritesRepository - хранилище списка избранного под одним ключом
type FavoritesRepository interface {
	// Load возвращает сохранённый список. Пустой список, если ключа нет
	Load(ctx context.Context) ([]string, error)

	// Save перезаписывает список целиком
	Save(ctx context.Context, ids []string) error
}
