package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/normalizer"
	apperrors "github.com/seeuferweg-catalog/internal/pkg/errors"
	"github.com/seeuferweg-catalog/internal/pkg/metrics"
	"github.com/seeuferweg-catalog/internal/usecase"
	"github.com/seeuferweg-catalog/internal/usecase/dto"
)

var glarnerlandDoc = json.RawMessage(`[
	{
		"identifier": "g1",
		"@type": "Webcam",
		"name": {"de": "Walensee Panorama Webcam"},
		"description": {"de": "Aussicht über den Walensee"},
		"geo": {"latitude": 47.12, "longitude": 9.2},
		"address": {"addressLocality": "Walenstadt"},
		"image": [{"contentUrl": "https://img.example.ch/g1.jpg"}],
		"dateModified": "2024-03-01T00:00:00Z"
	},
	{
		"identifier": "g2",
		"@type": "Hotel",
		"name": {"de": "Seehotel Ätzli"},
		"description": {"de": "` + strings.Repeat("Ruhige Zimmer. ", 10) + `"},
		"geo": {"latitude": 47.13, "longitude": 9.21},
		"address": {"addressLocality": "Quinten"},
		"image": ["https://img.example.ch/g2.jpg"],
		"dateModified": "2024-05-01T00:00:00Z"
	},
	{
		"identifier": "g3",
		"@type": "Restaurant",
		"additionalType": "BarOrPub",
		"name": {"de": "Bootshaus"},
		"description": {"de": "Fisch und Wein"},
		"geo": {"latitude": "47.05", "longitude": "9.10"},
		"address": {"addressLocality": "Amden"}
	},
	{
		"identifier": "far",
		"@type": "Restaurant",
		"name": {"de": "Fern"},
		"geo": {"latitude": "50.0", "longitude": "9.10"}
	}
]`)

var heidilandDoc = json.RawMessage(`[
	{"identifier": "h1", "@type": "Package", "name": {"de": "Skipass Flumserberg"}, "description": {"de": "Ski fahren"}, "image": "https://img.example.ch/h1.jpg"},
	{"identifier": "g3", "@type": "Hotel", "name": "Duplicate"}
]`)

var rapperswilDoc = json.RawMessage(`{"id": "root", "name": {"de": "Kategorien"}, "children": []}`)

func newFeedMock(heidilandErr error) *MockFeedRepository {
	feeds := &MockFeedRepository{}
	feeds.On("Sources").Return([]domain.Source{
		domain.SourceHeidiland, domain.SourceRapperswil, domain.SourceGlarnerland,
	})
	feeds.On("Fetch", mock.Anything, domain.SourceGlarnerland).Return(glarnerlandDoc, nil)
	if heidilandErr != nil {
		feeds.On("Fetch", mock.Anything, domain.SourceHeidiland).Return(nil, heidilandErr)
	} else {
		feeds.On("Fetch", mock.Anything, domain.SourceHeidiland).Return(heidilandDoc, nil)
	}
	feeds.On("Fetch", mock.Anything, domain.SourceRapperswil).Return(rapperswilDoc, nil)
	return feeds
}

func newCatalog(t *testing.T, feeds *MockFeedRepository) (*usecase.CatalogUseCase, *metrics.Metrics) {
	t.Helper()
	logger := zap.NewNop()
	m := metrics.NewMetricsForTesting()
	n := normalizer.NewNormalizer(domain.WalenseeRegion, logger, m)
	return usecase.NewCatalogUseCase(feeds, n, m, clockwork.NewFakeClock(), logger), m
}

func loadedCatalog(t *testing.T) *usecase.CatalogUseCase {
	t.Helper()
	uc, _ := newCatalog(t, newFeedMock(nil))
	_, err := uc.Load(context.Background())
	require.NoError(t, err)
	return uc
}

func ids(pois []domain.POI) []string {
	out := make([]string, len(pois))
	for i, p := range pois {
		out[i] = p.ID
	}
	return out
}

func TestCatalogUseCase_Load(t *testing.T) {
	t.Run("empty before load", func(t *testing.T) {
		uc, _ := newCatalog(t, newFeedMock(nil))
		assert.Empty(t, uc.GetAll())
		assert.Empty(t, uc.Markers())
	})

	t.Run("merges sources in fixed order and drops duplicate ids", func(t *testing.T) {
		feeds := newFeedMock(nil)
		uc, m := newCatalog(t, feeds)

		count, err := uc.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, count)
		assert.Equal(t, []string{"g1", "g2", "g3", "h1"}, ids(uc.GetAll()))

		poi, ok := uc.GetByID("g3")
		require.True(t, ok)
		assert.Equal(t, "Bootshaus", poi.Name)
		assert.Equal(t, float64(4), testutil.ToFloat64(m.CatalogPOIs))
		feeds.AssertExpectations(t)
	})

	t.Run("failed feed degrades to empty source", func(t *testing.T) {
		uc, m := newCatalog(t, newFeedMock(errors.New("connection refused")))

		count, err := uc.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.FeedFetches.WithLabelValues("heidiland", "error")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.FeedFetches.WithLabelValues("glarnerland", "success")))
	})

	t.Run("failed feed is reported once with its source", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		logger := zap.New(core)
		m := metrics.NewMetricsForTesting()
		uc := usecase.NewCatalogUseCase(newFeedMock(errors.New("connection refused")),
			normalizer.NewNormalizer(domain.WalenseeRegion, logger, m), m, clockwork.NewFakeClock(), logger)

		_, err := uc.Load(context.Background())
		require.NoError(t, err)

		degraded := logs.FilterMessage("Catalog built with degraded sources").All()
		require.Len(t, degraded, 1)
		assert.Contains(t, degraded[0].ContextMap()["error"], "fetch heidiland: connection refused")
	})

	t.Run("cancelled context keeps previous snapshot", func(t *testing.T) {
		uc, _ := newCatalog(t, newFeedMock(nil))
		_, err := uc.Load(context.Background())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = uc.Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Len(t, uc.GetAll(), 4)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		uc := loadedCatalog(t)
		all := uc.GetAll()
		all[0].Name = "changed"
		poi, _ := uc.GetByID("g1")
		assert.Equal(t, "Walensee Panorama Webcam", poi.Name)
	})

	t.Run("nested slices and coordinates are not shared", func(t *testing.T) {
		uc := loadedCatalog(t)

		all := uc.GetAll()
		all[0].Images[0] = "https://evil.example/x.jpg"
		all[0].Category[0] = "Changed"
		*all[0].Location.Lat = 0

		byID, _ := uc.GetByID("g1")
		byID.Images[0] = "https://evil.example/y.jpg"
		*byID.Location.Lon = 0

		queried := uc.Search("walensee")
		require.Len(t, queried, 1)
		queried[0].Category[0] = "Changed"

		poi, ok := uc.GetByID("g1")
		require.True(t, ok)
		assert.Equal(t, []string{"https://img.example.ch/g1.jpg"}, poi.Images)
		assert.Equal(t, []string{"Webcam"}, poi.Category)
		assert.Equal(t, 47.12, *poi.Location.Lat)
		assert.Equal(t, 9.2, *poi.Location.Lon)
		assert.Equal(t, "Webcam", uc.GetCategories()[0])
	})
}

func TestCatalogUseCase_Queries(t *testing.T) {
	uc := loadedCatalog(t)

	t.Run("get by id miss", func(t *testing.T) {
		_, ok := uc.GetByID("missing")
		assert.False(t, ok)
	})

	t.Run("filter by type", func(t *testing.T) {
		assert.Equal(t, []string{"g3"}, ids(uc.FilterByType(domain.POITypeRestaurant)))
		assert.Empty(t, uc.FilterByType(domain.POITypeCamping))
	})

	t.Run("filter by category", func(t *testing.T) {
		assert.Equal(t, []string{"g3"}, ids(uc.FilterByCategory([]string{"BarOrPub"})))
		assert.Equal(t, []string{"g2", "h1"}, ids(uc.FilterByCategory([]string{"Hotel", "Package"})))
		assert.Len(t, uc.FilterByCategory(nil), 4)
	})

	t.Run("search is case-insensitive over name, description and address", func(t *testing.T) {
		assert.Equal(t, []string{"g1"}, ids(uc.Search("WALENSEE")))
		assert.Equal(t, []string{"g3"}, ids(uc.Search("amden")))
		assert.Equal(t, []string{"g2"}, ids(uc.Search("ätzli")))
		assert.Equal(t, []string{"g3"}, ids(uc.Search("wein")))
		assert.Len(t, uc.Search(""), 4)
		assert.Empty(t, uc.Search("zürich"))
	})

	t.Run("query sorted by name", func(t *testing.T) {
		result := uc.Query(domain.POIFilter{SortBy: domain.SortName})
		assert.Equal(t, []string{"g3", "g2", "h1", "g1"}, ids(result))
	})

	t.Run("query sorted by date newest first", func(t *testing.T) {
		result := uc.Query(domain.POIFilter{SortBy: domain.SortDate})
		assert.Equal(t, []string{"g2", "g1", "g3", "h1"}, ids(result))
	})

	t.Run("query sorted by location", func(t *testing.T) {
		result := uc.Query(domain.POIFilter{SortBy: domain.SortLocation})
		assert.Equal(t, []string{"g3", "h1", "g2", "g1"}, ids(result))
	})

	t.Run("price filter and sort", func(t *testing.T) {
		feeds := &MockFeedRepository{}
		feeds.On("Sources").Return([]domain.Source{domain.SourceHeidiland})
		feeds.On("Fetch", mock.Anything, domain.SourceHeidiland).Return(json.RawMessage(`[
			{"id":"hotel","name":"Seehotel","priceRange":"CHF 180"},
			{"id":"free","name":"Wanderweg"},
			{"id":"pass","name":"Skipass","offers":{"description":"ab CHF 60"}}
		]`), nil)
		priced, _ := newCatalog(t, feeds)
		_, err := priced.Load(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"free", "pass", "hotel"}, ids(priced.Query(domain.POIFilter{SortBy: domain.SortPrice})))

		limit := 100.0
		assert.Equal(t, []string{"free", "pass"}, ids(priced.Query(domain.POIFilter{MaxPrice: &limit})))

		zero := 0.0
		assert.Equal(t, []string{"free"}, ids(priced.Query(domain.POIFilter{MaxPrice: &zero})))
	})

	t.Run("query combines filters", func(t *testing.T) {
		result := uc.Query(domain.POIFilter{
			Query: "see",
			Types: []domain.POIType{domain.POITypeAccommodation, domain.POITypeWebcam},
		})
		assert.Equal(t, []string{"g1", "g2"}, ids(result))
	})

	t.Run("types and categories in first-seen order", func(t *testing.T) {
		assert.Equal(t, []domain.POIType{
			domain.POITypeWebcam, domain.POITypeAccommodation, domain.POITypeRestaurant, domain.POITypePackage,
		}, uc.GetTypes())
		assert.Equal(t, []string{"Webcam", "Hotel", "Restaurant", "BarOrPub", "Package"}, uc.GetCategories())
	})

	t.Run("markers only for geolocated POIs", func(t *testing.T) {
		markers := uc.Markers()
		require.Len(t, markers, 3)
		assert.Equal(t, "g1", markers[0].ID)
		assert.Equal(t, "video", markers[0].Icon)
		assert.Equal(t, 47.05, markers[2].Lat)
		assert.Equal(t, "utensils", markers[2].Icon)
	})
}

func TestCatalogUseCase_Nearby(t *testing.T) {
	uc := loadedCatalog(t)

	t.Run("closest first within radius", func(t *testing.T) {
		result, err := uc.Nearby(dto.NearbyRequest{Lat: 47.12, Lon: 9.2, RadiusKm: 5})
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "g1", result[0].ID)
		assert.InDelta(t, 0, result[0].DistanceKm, 0.001)
		assert.Equal(t, "g2", result[1].ID)
	})

	t.Run("default radius", func(t *testing.T) {
		result, err := uc.Nearby(dto.NearbyRequest{Lat: 47.05, Lon: 9.10})
		require.NoError(t, err)
		assert.Equal(t, "g3", result[0].ID)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := uc.Nearby(dto.NearbyRequest{Lat: 120, Lon: 9})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)

		_, err = uc.Nearby(dto.NearbyRequest{Lat: 47, Lon: 9, RadiusKm: 500})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRadius)
	})
}
