package usecase

import (
	"context"
	"sync"

	"github.com/seeuferweg-catalog/internal/domain"
)

// FavoritesListener получает уведомления об изменении избранного
type FavoritesListener func(event domain.FavoritesChangedEvent)

// Broadcaster рассылает изменения избранного подписчикам внутри процесса
type Broadcaster struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]FavoritesListener
}

// NewBroadcaster - создание нового Broadcaster без подписчиков
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[int]FavoritesListener),
	}
}

// Subscribe регистрирует подписчика и возвращает функцию отписки
func (b *Broadcaster) Subscribe(fn FavoritesListener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subscribers, id)
		b.mu.Unlock()
	}
}

// PublishFavoritesChanged синхронно вызывает всех подписчиков
func (b *Broadcaster) PublishFavoritesChanged(_ context.Context, event domain.FavoritesChangedEvent) error {
	b.mu.RLock()
	listeners := make([]FavoritesListener, 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		listeners = append(listeners, fn)
	}
	b.mu.RUnlock()

	for _, fn := range listeners {
		fn(event)
	}
	return nil
}
