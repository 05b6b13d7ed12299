package domain

import "time"

// Имена Redis Streams
const (
	StreamCatalogReload    = "stream:catalog:reload"
	StreamFavoritesChanged = "stream:favorites:changed"
)

// FavoritesChangedEvent - уведомление об изменении избранного
type FavoritesChangedEvent struct {
	Count     int       `json:"count"`
	Favorites []string  `json:"favorites"`
	ChangedAt time.Time `json:"changed_at"`
}

// CatalogReloadEvent - запрос на перезагрузку каталога
type CatalogReloadEvent struct {
	Reason      string    `json:"reason,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
