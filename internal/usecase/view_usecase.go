package usecase

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/domain"
)

// DefaultHighlightsLimit - размер подборки, если лимит не задан
const DefaultHighlightsLimit = 6

// highlightThreshold - минимальный балл (не включительно) для попадания в подборку
const highlightThreshold = 20.0

var activityTypes = map[domain.POIType]bool{
	domain.POITypeSport:      true,
	domain.POITypeWellness:   true,
	domain.POITypeAttraction: true,
	domain.POITypeCamping:    true,
	domain.POITypeNature:     true,
}

var activityKeywords = []string{
	"wandern", "wanderung", "hiking", "trail", "pfad",
	"bike", "velo", "rad", "cycling",
	"ski", "snowboard", "langlauf", "winter",
	"sport", "aktivität", "activity",
	"bergbahn", "seilbahn", "sessellift", "gondel",
	"klettern", "climbing", "bouldern",
	"schwimmen", "baden", "pool", "wellness",
	"segeln", "boot", "schiff",
	"golf", "tennis", "minigolf",
	"erlebnis", "experience", "abenteuer",
	"tour", "trekking", "ausflug",
	"spielplatz", "playground",
	"hochseilgarten", "seilpark",
	"rodelbahn", "toboggan", "schlittel",
}

// CatalogReader - источник POI для производных представлений
type CatalogReader interface {
	GetAll() []domain.POI
	LoadedAt() time.Time
}

// ViewUseCase строит подборки и статистику по текущему снимку каталога
type ViewUseCase struct {
	catalog CatalogReader
	logger  *zap.Logger
}

// NewViewUseCase - создание нового ViewUseCase
func NewViewUseCase(catalog CatalogReader, logger *zap.Logger) *ViewUseCase {
	return &ViewUseCase{
		catalog: catalog,
		logger:  logger,
	}
}

type scoredPOI struct {
	poi   domain.POI
	score float64
}

// HighlightScore - балл подборки лучших POI: вебкамеры с видом на озеро, жильё и кемпинги
// с подробным описанием, плюс бонус за длину описания (не более 20)
func HighlightScore(poi domain.POI) float64 {
	var score float64
	text := strings.ToLower(poi.Name + " " + poi.Description)
	descLen := utf8.RuneCountInString(poi.Description)

	switch poi.Type {
	case domain.POITypeWebcam:
		if strings.Contains(text, "walensee") {
			score += 100
		}
		if strings.Contains(text, "aussicht") || strings.Contains(text, "panorama") {
			score += 50
		}
		score += 30
	case domain.POITypeAccommodation:
		if descLen > 100 {
			score += 40
		}
		if strings.Contains(text, "aussicht") {
			score += 30
		}
	case domain.POITypeCamping:
		if descLen > 200 {
			score += 45
		}
	}

	score += math.Min(float64(descLen)/50, 20)
	return score
}

// PhotoPointScore - балл фототочки по названию. Не связан с HighlightScore
func PhotoPointScore(poi domain.POI) float64 {
	var score float64
	name := strings.ToLower(poi.Name)

	if poi.Type == domain.POITypeWebcam {
		score += 50
	}
	if strings.Contains(name, "aussicht") || strings.Contains(name, "panorama") {
		score += 30
	}
	if strings.Contains(name, "walensee") {
		score += 25
	}
	if strings.Contains(name, "see") || strings.Contains(name, "berg") {
		score += 15
	}
	if strings.Contains(name, "alp") || strings.Contains(name, "grat") || strings.Contains(name, "tal") {
		score += 20
	}
	return score
}

// IsActivity сообщает, относится ли POI к активностям по типу или ключевым словам
func IsActivity(poi domain.POI) bool {
	if activityTypes[poi.Type] {
		return true
	}
	text := strings.ToLower(poi.Name + " " + poi.Description)
	for _, kw := range activityKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// rank оценивает POI с изображениями, отбрасывает баллы не выше threshold и сортирует по убыванию
func rank(pois []domain.POI, score func(domain.POI) float64, threshold float64) []domain.POI {
	scored := make([]scoredPOI, 0, len(pois))
	for _, poi := range pois {
		if len(poi.Images) == 0 {
			continue
		}
		if s := score(poi); s > threshold {
			scored = append(scored, scoredPOI{poi: poi, score: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	result := make([]domain.POI, len(scored))
	for i, s := range scored {
		result[i] = s.poi
	}
	return result
}

// Highlights возвращает до limit лучших POI. limit <= 0 означает значение по умолчанию
func (uc *ViewUseCase) Highlights(limit int) []domain.POI {
	if limit <= 0 {
		limit = DefaultHighlightsLimit
	}
	ranked := rank(uc.catalog.GetAll(), HighlightScore, highlightThreshold)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Activities возвращает активности в порядке каталога
func (uc *ViewUseCase) Activities() []domain.POI {
	result := make([]domain.POI, 0)
	for _, poi := range uc.catalog.GetAll() {
		if IsActivity(poi) {
			result = append(result, poi)
		}
	}
	return result
}

// PhotoPoints возвращает фототочки по убыванию балла
func (uc *ViewUseCase) PhotoPoints() []domain.POI {
	return rank(uc.catalog.GetAll(), PhotoPointScore, 0)
}

// Statistics пересчитывает сводку по текущему снимку
func (uc *ViewUseCase) Statistics() domain.CatalogStatistics {
	pois := uc.catalog.GetAll()

	stats := domain.CatalogStatistics{
		TotalPOIs:        len(pois),
		TotalHighlights:  len(uc.Highlights(math.MaxInt)),
		TotalActivities:  len(uc.Activities()),
		TotalPhotoPoints: len(uc.PhotoPoints()),
		ByType:           make(map[domain.POIType]int),
		BySource:         make(map[domain.Source]int),
		LoadedAt:         uc.catalog.LoadedAt(),
	}
	for _, poi := range pois {
		stats.ByType[poi.Type]++
		stats.BySource[poi.Source]++
		if poi.Location.HasCoordinates() {
			stats.GeolocatedPOIs++
		}
	}

	uc.logger.Debug("Statistics computed", zap.Int("total_pois", stats.TotalPOIs))
	return stats
}
