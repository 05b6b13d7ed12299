package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/domain/repository"
	"github.com/seeuferweg-catalog/internal/normalizer"
	"github.com/seeuferweg-catalog/internal/pkg/errors"
	"github.com/seeuferweg-catalog/internal/pkg/metrics"
	"github.com/seeuferweg-catalog/internal/pkg/utils"
	"github.com/seeuferweg-catalog/internal/usecase/dto"
)

// DefaultNearbyRadiusKm - радиус поиска рядом, если он не задан
const DefaultNearbyRadiusKm = 2.0

// searchSeparator разделяет поля в подготовленном тексте поиска, чтобы совпадение не склеивало соседние поля
const searchSeparator = "\x00"

// catalogSnapshot - неизменяемый снимок каталога
type catalogSnapshot struct {
	pois       []domain.POI
	byID       map[string]int
	searchText []string
	loadedAt   time.Time
}

var emptySnapshot = &catalogSnapshot{
	pois: []domain.POI{},
	byID: map[string]int{},
}

// CatalogUseCase - каталог POI всех источников. Снимок заменяется атомарно при загрузке
type CatalogUseCase struct {
	feedRepo   repository.FeedRepository
	normalizer *normalizer.Normalizer
	metrics    *metrics.Metrics
	clock      clockwork.Clock
	logger     *zap.Logger

	snapshot atomic.Pointer[catalogSnapshot]
}

// NewCatalogUseCase - создание нового CatalogUseCase с пустым каталогом
func NewCatalogUseCase(
	feedRepo repository.FeedRepository,
	n *normalizer.Normalizer,
	m *metrics.Metrics,
	clock clockwork.Clock,
	logger *zap.Logger,
) *CatalogUseCase {
	uc := &CatalogUseCase{
		feedRepo:   feedRepo,
		normalizer: n,
		metrics:    m,
		clock:      clock,
		logger:     logger,
	}
	uc.snapshot.Store(emptySnapshot)
	return uc
}

// Load загружает все фиды параллельно и заменяет снимок. Ошибка фида превращает его в пустой источник.
// Возвращает число POI в новом снимке
func (uc *CatalogUseCase) Load(ctx context.Context) (int, error) {
	start := uc.clock.Now()

	configured := mapset.NewThreadUnsafeSet(uc.feedRepo.Sources()...)
	sources := make([]domain.Source, 0, len(domain.SourceOrder))
	for _, s := range domain.SourceOrder {
		if configured.Contains(s) {
			sources = append(sources, s)
		}
	}

	// Group без контекста: сбой одного фида не отменяет остальные, Wait отдаёт первую ошибку
	results := make([][]domain.POI, len(sources))
	var g errgroup.Group
	for i, source := range sources {
		g.Go(func() error {
			pois, err := uc.loadSource(ctx, source)
			results[i] = pois
			return err
		})
	}
	if err := g.Wait(); err != nil {
		uc.logger.Warn("Catalog built with degraded sources", zap.Error(err))
	}

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("catalog load aborted: %w", err)
	}

	snap := uc.buildSnapshot(results)
	uc.snapshot.Store(snap)

	uc.metrics.CatalogPOIs.Set(float64(len(snap.pois)))
	uc.metrics.CatalogLoad.Observe(uc.clock.Since(start).Seconds())
	uc.logger.Info("Catalog loaded",
		zap.Int("pois", len(snap.pois)),
		zap.Int("sources", len(sources)),
		zap.Duration("duration", uc.clock.Since(start)))

	return len(snap.pois), nil
}

// loadSource загружает и нормализует один фид. При ошибке возвращает nil и ошибку с именем источника
func (uc *CatalogUseCase) loadSource(ctx context.Context, source domain.Source) ([]domain.POI, error) {
	doc, err := uc.feedRepo.Fetch(ctx, source)
	if err != nil {
		uc.logger.Warn("Feed unavailable, using empty source",
			zap.String("source", string(source)),
			zap.Error(err))
		uc.metrics.FeedFetches.WithLabelValues(string(source), "error").Inc()
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}

	pois, err := uc.normalizer.Normalize(source, doc)
	if err != nil {
		uc.logger.Warn("Feed could not be normalized, using empty source",
			zap.String("source", string(source)),
			zap.Error(err))
		uc.metrics.FeedFetches.WithLabelValues(string(source), "error").Inc()
		return nil, fmt.Errorf("normalize %s: %w", source, err)
	}

	uc.metrics.FeedFetches.WithLabelValues(string(source), "success").Inc()
	return pois, nil
}

func (uc *CatalogUseCase) buildSnapshot(results [][]domain.POI) *catalogSnapshot {
	total := 0
	for _, r := range results {
		total += len(r)
	}

	snap := &catalogSnapshot{
		pois:       make([]domain.POI, 0, total),
		byID:       make(map[string]int, total),
		searchText: make([]string, 0, total),
		loadedAt:   uc.clock.Now(),
	}
	for _, pois := range results {
		for _, poi := range pois {
			if _, dup := snap.byID[poi.ID]; dup {
				uc.logger.Warn("Duplicate POI id, keeping first",
					zap.String("id", poi.ID),
					zap.String("source", string(poi.Source)))
				continue
			}
			snap.byID[poi.ID] = len(snap.pois)
			snap.pois = append(snap.pois, poi)
			snap.searchText = append(snap.searchText, strings.Join([]string{
				foldText(poi.Name),
				foldText(poi.Description),
				foldText(poi.Location.Address),
			}, searchSeparator))
		}
	}
	return snap
}

func (uc *CatalogUseCase) current() *catalogSnapshot {
	return uc.snapshot.Load()
}

// foldText приводит текст к NFKC и нижнему регистру для поиска без учёта регистра
func foldText(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// GetAll возвращает копии всех POI в порядке каталога. Снимок вызывающему не отдаётся
func (uc *CatalogUseCase) GetAll() []domain.POI {
	snap := uc.current()
	out := make([]domain.POI, len(snap.pois))
	for i, poi := range snap.pois {
		out[i] = poi.Clone()
	}
	return out
}

// Count возвращает размер каталога
func (uc *CatalogUseCase) Count() int {
	return len(uc.current().pois)
}

// LoadedAt возвращает время построения текущего снимка
func (uc *CatalogUseCase) LoadedAt() time.Time {
	return uc.current().loadedAt
}

// GetByID ищет POI по идентификатору
func (uc *CatalogUseCase) GetByID(id string) (domain.POI, bool) {
	snap := uc.current()
	idx, ok := snap.byID[id]
	if !ok {
		return domain.POI{}, false
	}
	return snap.pois[idx].Clone(), true
}

// FilterByType возвращает POI указанного типа
func (uc *CatalogUseCase) FilterByType(t domain.POIType) []domain.POI {
	return uc.Query(domain.POIFilter{Types: []domain.POIType{t}})
}

// FilterByCategory возвращает POI, у которых есть хотя бы одна из категорий. Пустой набор - все POI
func (uc *CatalogUseCase) FilterByCategory(categories []string) []domain.POI {
	return uc.Query(domain.POIFilter{Categories: categories})
}

// Search - поиск подстроки без учёта регистра по имени, описанию и адресу. Пустой запрос - все POI
func (uc *CatalogUseCase) Search(query string) []domain.POI {
	return uc.Query(domain.POIFilter{Query: query})
}

// Query комбинирует поиск, фильтры по типу, категории и цене и сортировку
func (uc *CatalogUseCase) Query(filter domain.POIFilter) []domain.POI {
	snap := uc.current()

	types := mapset.NewThreadUnsafeSet(filter.Types...)
	categories := mapset.NewThreadUnsafeSet(filter.Categories...)
	needle := foldText(filter.Query)

	result := make([]domain.POI, 0)
	for i, poi := range snap.pois {
		if types.Cardinality() > 0 && !types.Contains(poi.Type) {
			continue
		}
		if categories.Cardinality() > 0 && !hasAnyCategory(poi, categories) {
			continue
		}
		if needle != "" && !matchesSearch(snap.searchText[i], needle) {
			continue
		}
		if filter.MaxPrice != nil && poi.PriceCHF != nil && *poi.PriceCHF > *filter.MaxPrice {
			continue
		}
		result = append(result, poi.Clone())
	}

	sortPOIs(result, filter.SortBy)
	return result
}

func hasAnyCategory(poi domain.POI, categories mapset.Set[string]) bool {
	for _, c := range poi.Category {
		if categories.Contains(c) {
			return true
		}
	}
	return false
}

func matchesSearch(text, needle string) bool {
	for _, field := range strings.Split(text, searchSeparator) {
		if strings.Contains(field, needle) {
			return true
		}
	}
	return false
}

// sortPOIs сортирует стабильно. Collator создаётся на каждый вызов, он не потокобезопасен
func sortPOIs(pois []domain.POI, order domain.SortOrder) {
	switch order {
	case domain.SortName:
		c := collate.New(language.German)
		sort.SliceStable(pois, func(i, j int) bool {
			return c.CompareString(pois[i].Name, pois[j].Name) < 0
		})
	case domain.SortLocation:
		c := collate.New(language.German)
		sort.SliceStable(pois, func(i, j int) bool {
			return c.CompareString(pois[i].Location.Address, pois[j].Location.Address) < 0
		})
	case domain.SortPrice:
		sort.SliceStable(pois, func(i, j int) bool {
			return priceOrZero(pois[i]) < priceOrZero(pois[j])
		})
	case domain.SortDate:
		sort.SliceStable(pois, func(i, j int) bool {
			ti, okI := pois[i].ModifiedAt()
			tj, okJ := pois[j].ModifiedAt()
			if okI != okJ {
				return okI
			}
			return ti.After(tj)
		})
	}
}

func priceOrZero(poi domain.POI) float64 {
	if poi.PriceCHF == nil {
		return 0
	}
	return *poi.PriceCHF
}

// GetTypes возвращает типы, встречающиеся в каталоге, в порядке первого появления
func (uc *CatalogUseCase) GetTypes() []domain.POIType {
	seen := mapset.NewThreadUnsafeSet[domain.POIType]()
	types := make([]domain.POIType, 0)
	for _, poi := range uc.current().pois {
		if seen.Add(poi.Type) {
			types = append(types, poi.Type)
		}
	}
	return types
}

// GetCategories возвращает сырые категории в порядке первого появления
func (uc *CatalogUseCase) GetCategories() []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	categories := make([]string, 0)
	for _, poi := range uc.current().pois {
		for _, c := range poi.Category {
			if seen.Add(c) {
				categories = append(categories, c)
			}
		}
	}
	return categories
}

// Markers возвращает маркеры карты для POI с координатами
func (uc *CatalogUseCase) Markers() []domain.Marker {
	snap := uc.current()
	markers := make([]domain.Marker, 0, len(snap.pois))
	for _, poi := range snap.pois {
		if !poi.Location.HasCoordinates() {
			continue
		}
		markers = append(markers, domain.Marker{
			ID:   poi.ID,
			Name: poi.Name,
			Type: poi.Type,
			Icon: domain.MarkerIcon(poi.Type),
			Lat:  *poi.Location.Lat,
			Lon:  *poi.Location.Lon,
		})
	}
	return markers
}

// Nearby возвращает POI с координатами в радиусе от точки, ближайшие первыми
func (uc *CatalogUseCase) Nearby(req dto.NearbyRequest) ([]dto.NearbyPOI, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	if req.RadiusKm == 0 {
		req.RadiusKm = DefaultNearbyRadiusKm
	}
	if !utils.ValidateRadius(req.RadiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	result := make([]dto.NearbyPOI, 0)
	for _, poi := range uc.current().pois {
		if !poi.Location.HasCoordinates() {
			continue
		}
		d := utils.HaversineDistance(req.Lat, req.Lon, *poi.Location.Lat, *poi.Location.Lon)
		if d <= req.RadiusKm {
			result = append(result, dto.NearbyPOI{POI: poi.Clone(), DistanceKm: d})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	return result, nil
}
