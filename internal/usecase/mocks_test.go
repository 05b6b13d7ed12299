package usecase_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/seeuferweg-catalog/internal/domain"
)

// MockFeedRepository is a mock of FeedRepository
type MockFeedRepository struct {
	mock.Mock
}

func (m *MockFeedRepository) Sources() []domain.Source {
	args := m.Called()
	return args.Get(0).([]domain.Source)
}

func (m *MockFeedRepository) Fetch(ctx context.Context, source domain.Source) (json.RawMessage, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockFavoritesRepository is a mock of FavoritesRepository
type MockFavoritesRepository struct {
	mock.Mock
}

func (m *MockFavoritesRepository) Load(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFavoritesRepository) Save(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.FavoritesChangedEvent
	err    error
}

func (p *recordingPublisher) PublishFavoritesChanged(_ context.Context, event domain.FavoritesChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []domain.FavoritesChangedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.FavoritesChangedEvent, len(p.events))
	copy(out, p.events)
	return out
}
