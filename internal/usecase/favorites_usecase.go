package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/domain/repository"
	"github.com/seeuferweg-catalog/internal/pkg/errors"
	"github.com/seeuferweg-catalog/internal/pkg/metrics"
	"github.com/seeuferweg-catalog/internal/usecase/dto"
)

// FavoritesUseCase - упорядоченный список избранных POI без дубликатов.
// Каждое изменение сохраняется целиком и рассылается publishers
type FavoritesUseCase struct {
	mu  sync.Mutex
	ids []string
	// notifyMu захватывается до освобождения mu, поэтому события уходят в порядке изменений.
	// Подписчики могут читать состояние, но не должны изменять его синхронно
	notifyMu sync.Mutex

	repo       repository.FavoritesRepository
	publishers []repository.EventPublisher
	clock      clockwork.Clock
	appName    string
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewFavoritesUseCase загружает сохранённое избранное. Ошибка загрузки даёт пустой список
func NewFavoritesUseCase(
	ctx context.Context,
	repo repository.FavoritesRepository,
	publishers []repository.EventPublisher,
	clock clockwork.Clock,
	appName string,
	m *metrics.Metrics,
	logger *zap.Logger,
) *FavoritesUseCase {
	uc := &FavoritesUseCase{
		repo:       repo,
		publishers: publishers,
		clock:      clock,
		appName:    appName,
		metrics:    m,
		logger:     logger,
	}

	stored, err := repo.Load(ctx)
	if err != nil {
		logger.Error("Failed to load favorites, starting empty", zap.Error(err))
		stored = nil
	}
	uc.ids = dedupe(stored)
	m.FavoritesCount.Set(float64(len(uc.ids)))

	return uc
}

// Add добавляет id в конец списка. false, если id пустой или уже есть
func (uc *FavoritesUseCase) Add(ctx context.Context, id string) bool {
	if id == "" {
		return false
	}
	return uc.mutate(ctx, "add", func(ids []string) ([]string, bool) {
		if contains(ids, id) {
			return ids, false
		}
		return append(ids, id), true
	})
}

// Remove удаляет id. false, если его не было
func (uc *FavoritesUseCase) Remove(ctx context.Context, id string) bool {
	return uc.mutate(ctx, "remove", func(ids []string) ([]string, bool) {
		for i, existing := range ids {
			if existing == id {
				return append(ids[:i:i], ids[i+1:]...), true
			}
		}
		return ids, false
	})
}

// Toggle переключает id и возвращает новое состояние
func (uc *FavoritesUseCase) Toggle(ctx context.Context, id string) bool {
	var isFavorite bool
	uc.mutate(ctx, "toggle", func(ids []string) ([]string, bool) {
		for i, existing := range ids {
			if existing == id {
				return append(ids[:i:i], ids[i+1:]...), true
			}
		}
		if id == "" {
			return ids, false
		}
		isFavorite = true
		return append(ids, id), true
	})
	return isFavorite
}

// IsFavorite проверяет наличие id
func (uc *FavoritesUseCase) IsFavorite(id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return contains(uc.ids, id)
}

// GetAll возвращает копию списка
func (uc *FavoritesUseCase) GetAll() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return clone(uc.ids)
}

// Count возвращает число избранных
func (uc *FavoritesUseCase) Count() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.ids)
}

// Clear очищает список
func (uc *FavoritesUseCase) Clear(ctx context.Context) {
	uc.mutate(ctx, "clear", func([]string) ([]string, bool) {
		return []string{}, true
	})
}

// Import применяет список ids в режиме replace или merge
func (uc *FavoritesUseCase) Import(ctx context.Context, ids []string, mode domain.ImportMode) ([]string, error) {
	if !mode.IsValid() {
		return nil, errors.ErrInvalidImportMode
	}

	var result []string
	uc.mutate(ctx, "import_"+string(mode), func(current []string) ([]string, bool) {
		if mode == domain.ImportReplace {
			result = dedupe(ids)
		} else {
			result = merge(current, ids)
		}
		return result, true
	})
	return clone(result), nil
}

// ImportFile читает JSON-массив строк. При ошибке разбора состояние не меняется
func (uc *FavoritesUseCase) ImportFile(ctx context.Context, r io.Reader, mode domain.ImportMode) (*dto.ImportResult, error) {
	if !mode.IsValid() {
		return nil, errors.ErrInvalidImportMode
	}

	var ids []string
	if err := json.NewDecoder(r).Decode(&ids); err != nil {
		uc.logger.Warn("Rejected favorites file", zap.Error(err))
		return nil, errors.ErrInvalidFavoritesFile.WithDetails(map[string]interface{}{"reason": err.Error()})
	}
	if ids == nil {
		return nil, errors.ErrInvalidFavoritesFile
	}

	ids = nonBlank(ids)
	favorites, err := uc.Import(ctx, ids, mode)
	if err != nil {
		return nil, err
	}
	return &dto.ImportResult{Imported: len(ids), Favorites: favorites}, nil
}

// ImportFromURL импортирует ids из параметра favorites и возвращает ссылку без этого параметра.
// Без параметра состояние не меняется
func (uc *FavoritesUseCase) ImportFromURL(ctx context.Context, rawURL string, mode domain.ImportMode) (*dto.ImportResult, error) {
	if !mode.IsValid() {
		return nil, errors.ErrInvalidImportMode
	}

	ids, stripped, err := ParseURLImport(rawURL)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &dto.ImportResult{Favorites: uc.GetAll(), URL: stripped}, nil
	}

	favorites, err := uc.Import(ctx, ids, mode)
	if err != nil {
		return nil, err
	}
	return &dto.ImportResult{
		Imported:  len(ids),
		Favorites: favorites,
		URL:       stripped,
	}, nil
}

// ExportURL строит ссылку pageURL?favorites=<ids>. Прежние query и fragment отбрасываются
func (uc *FavoritesUseCase) ExportURL(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", errors.ErrInvalidFavoritesURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = domain.FavoritesQueryParam + "=" + url.QueryEscape(strings.Join(uc.GetAll(), ","))
	return u.String(), nil
}

// ExportFile возвращает имя файла с текущей датой и JSON-массив с отступом в два пробела
func (uc *FavoritesUseCase) ExportFile() (string, []byte, error) {
	data, err := json.MarshalIndent(uc.GetAll(), "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode favorites: %w", err)
	}
	filename := fmt.Sprintf("%s-favorites-%s.json", uc.appName, uc.clock.Now().UTC().Format("2006-01-02"))
	return filename, data, nil
}

// ParseURLImport извлекает ids из параметра favorites (пустые отбрасываются)
// и возвращает ссылку без этого параметра, остальные параметры сохраняются
func ParseURLImport(rawURL string) ([]string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", errors.ErrInvalidFavoritesURL
	}

	q := u.Query()
	if !q.Has(domain.FavoritesQueryParam) {
		return []string{}, rawURL, nil
	}

	ids := nonBlank(strings.Split(q.Get(domain.FavoritesQueryParam), ","))
	q.Del(domain.FavoritesQueryParam)
	u.RawQuery = q.Encode()
	return ids, u.String(), nil
}

// mutate применяет fn под мьютексом, сохраняет результат и рассылает уведомление
func (uc *FavoritesUseCase) mutate(ctx context.Context, op string, fn func(ids []string) ([]string, bool)) bool {
	uc.mu.Lock()
	next, changed := fn(clone(uc.ids))
	if !changed {
		uc.mu.Unlock()
		return false
	}
	uc.ids = next
	snapshot := clone(next)
	if err := uc.repo.Save(ctx, snapshot); err != nil {
		uc.logger.Error("Failed to persist favorites, keeping in memory",
			zap.String("op", op),
			zap.Error(err))
	}
	uc.notifyMu.Lock()
	uc.mu.Unlock()
	defer uc.notifyMu.Unlock()

	uc.metrics.FavoritesMutations.WithLabelValues(op).Inc()
	uc.metrics.FavoritesCount.Set(float64(len(snapshot)))
	uc.notify(ctx, snapshot)
	return true
}

func (uc *FavoritesUseCase) notify(ctx context.Context, ids []string) {
	event := domain.FavoritesChangedEvent{
		Count:     len(ids),
		Favorites: ids,
		ChangedAt: uc.clock.Now(),
	}
	for _, p := range uc.publishers {
		if err := p.PublishFavoritesChanged(ctx, event); err != nil {
			uc.metrics.NotifyErrors.Inc()
			uc.logger.Warn("Failed to publish favorites change", zap.Error(err))
		}
	}
}

func contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func clone(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// dedupe удаляет повторы, сохраняя порядок первого появления
func dedupe(ids []string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && seen.Add(id) {
			out = append(out, id)
		}
	}
	return out
}

// merge дописывает к current новые ids в порядке поступления
func merge(current, incoming []string) []string {
	seen := mapset.NewThreadUnsafeSet(current...)
	out := clone(current)
	for _, id := range incoming {
		if id != "" && seen.Add(id) {
			out = append(out, id)
		}
	}
	return out
}

func nonBlank(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
