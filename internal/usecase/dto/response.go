package dto

import "github.com/seeuferweg-catalog/internal/domain"

// NearbyPOI - POI с расстоянием до точки запроса
type NearbyPOI struct {
	domain.POI
	DistanceKm float64 `json:"distance_km"`
}

// FavoritesResponse - текущее состояние избранного
type FavoritesResponse struct {
	Favorites []string `json:"favorites"`
	Count     int      `json:"count"`
}

// ToggleResponse - результат переключения избранного
type ToggleResponse struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"is_favorite"`
	Count      int    `json:"count"`
}

// ExportURLResponse - ссылка для обмена избранным
type ExportURLResponse struct {
	URL string `json:"url"`
}

// ImportResult - результат импорта избранного
type ImportResult struct {
	Imported  int      `json:"imported"`
	Favorites []string `json:"favorites"`
	URL       string   `json:"url,omitempty"`
}

// ReloadResponse - итог перезагрузки каталога
type ReloadResponse struct {
	Total int `json:"total"`
}
