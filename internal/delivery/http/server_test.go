package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/config"
	httpserver "github.com/seeuferweg-catalog/internal/delivery/http"
	"github.com/seeuferweg-catalog/internal/delivery/http/handler"
	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/domain/repository"
	"github.com/seeuferweg-catalog/internal/normalizer"
	"github.com/seeuferweg-catalog/internal/pkg/metrics"
	"github.com/seeuferweg-catalog/internal/repository/memory"
	"github.com/seeuferweg-catalog/internal/usecase"
)

var now = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

type staticFeeds map[domain.Source]string

func (f staticFeeds) Sources() []domain.Source {
	sources := make([]domain.Source, 0, len(f))
	for s := range f {
		sources = append(sources, s)
	}
	return sources
}

func (f staticFeeds) Fetch(_ context.Context, source domain.Source) (json.RawMessage, error) {
	return json.RawMessage(f[source]), nil
}

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) Health(ctx context.Context) error { return f(ctx) }

var feeds = staticFeeds{
	domain.SourceGlarnerland: `[
		{
			"identifier": "g1",
			"@type": "Webcam",
			"name": {"de": "Walensee Panorama Webcam"},
			"description": {"de": "Aussicht über den See"},
			"geo": {"latitude": 47.12, "longitude": 9.2},
			"image": "https://img.example.ch/g1.jpg"
		},
		{
			"identifier": "g2",
			"@type": "Restaurant",
			"name": {"de": "Bootshaus"},
			"geo": {"latitude": "47.05", "longitude": "9.10"},
			"priceRange": "CHF 150"
		}
	]`,
	domain.SourceHeidiland: `[{"identifier": "h1", "@type": "Package", "name": "Skipass Flumserberg", "offers": {"description": {"de": "ab CHF 120"}}}]`,
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	server    *httpserver.Server
	favorites *memory.FavoritesRepository
}

func newTestServer(t *testing.T, checkers map[string]handler.HealthChecker) *testServer {
	t.Helper()
	logger := zap.NewNop()
	clock := clockwork.NewFakeClockAt(now)
	registry := prometheus.NewRegistry()
	m := metrics.NewMetricsWithRegistry(registry)

	catalogUC := usecase.NewCatalogUseCase(feeds, normalizer.NewNormalizer(domain.WalenseeRegion, logger, m), m, clock, logger)
	_, err := catalogUC.Load(context.Background())
	require.NoError(t, err)

	store := memory.NewFavoritesRepository()
	favoritesUC := usecase.NewFavoritesUseCase(context.Background(), store, []repository.EventPublisher{usecase.NewBroadcaster()}, clock, "seeuferweg", m, logger)

	cfg := &config.Config{Server: config.ServerConfig{Port: 0}}
	srv := httpserver.NewServer(cfg, logger, httpserver.Handlers{
		Catalog:   handler.NewCatalogHandler(catalogUC, logger),
		Views:     handler.NewViewHandler(usecase.NewViewUseCase(catalogUC, logger), logger),
		Favorites: handler.NewFavoritesHandler(favoritesUC, catalogUC, logger),
		Health:    handler.NewHealthHandler(catalogUC, checkers, clock, logger),
	}, registry)

	return &testServer{server: srv, favorites: store}
}

func (s *testServer) do(t *testing.T, method, target, body string) (int, envelope) {
	t.Helper()
	status, raw := s.raw(t, method, target, body)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return status, env
}

func (s *testServer) raw(t *testing.T, method, target, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.server.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func poiIDs(t *testing.T, data json.RawMessage) []string {
	t.Helper()
	var pois []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &pois))
	ids := make([]string, 0, len(pois))
	for _, p := range pois {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	status, env := s.do(t, "GET", "/api/v1/pois", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, []string{"g1", "g2", "h1"}, poiIDs(t, env.Data))
	assert.EqualValues(t, 3, env.Meta["total"])

	_, env = s.do(t, "GET", "/api/v1/pois?type=restaurant", "")
	assert.Equal(t, []string{"g2"}, poiIDs(t, env.Data))

	_, env = s.do(t, "GET", "/api/v1/pois?q=BOOTS", "")
	assert.Equal(t, []string{"g2"}, poiIDs(t, env.Data))

	status, env = s.do(t, "GET", "/api/v1/pois?sort=rating", "")
	assert.Equal(t, 400, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)

	_, env = s.do(t, "GET", "/api/v1/pois?sort=price", "")
	assert.Equal(t, []string{"g1", "h1", "g2"}, poiIDs(t, env.Data))

	_, env = s.do(t, "GET", "/api/v1/pois?max_price=130", "")
	assert.Equal(t, []string{"g1", "h1"}, poiIDs(t, env.Data))

	for _, bad := range []string{"-1", "abc"} {
		status, env = s.do(t, "GET", "/api/v1/pois?max_price="+bad, "")
		assert.Equal(t, 400, status, bad)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	}

	status, env = s.do(t, "GET", "/api/v1/pois/h1", "")
	assert.Equal(t, 200, status)
	assert.Contains(t, string(env.Data), "Skipass Flumserberg")

	status, env = s.do(t, "GET", "/api/v1/pois/missing", "")
	assert.Equal(t, 404, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "POI_NOT_FOUND", env.Error.Code)

	_, env = s.do(t, "GET", "/api/v1/markers", "")
	var markers []domain.Marker
	require.NoError(t, json.Unmarshal(env.Data, &markers))
	require.Len(t, markers, 2)
	assert.Equal(t, "video", markers[0].Icon)

	_, env = s.do(t, "GET", "/api/v1/types", "")
	assert.JSONEq(t, `["webcam","restaurant","package"]`, string(env.Data))
}

func TestNearbyRoute(t *testing.T) {
	s := newTestServer(t, nil)

	status, env := s.do(t, "GET", "/api/v1/pois/nearby?lat=47.12&lon=9.2&radius_km=1", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, []string{"g1"}, poiIDs(t, env.Data))

	status, _ = s.do(t, "GET", "/api/v1/pois/nearby?lat=47.12&lon=9.2&radius_km=500", "")
	assert.Equal(t, 400, status)
}

func TestViewRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	status, env := s.do(t, "GET", "/api/v1/highlights?limit=3", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, []string{"g1"}, poiIDs(t, env.Data))

	status, _ = s.do(t, "GET", "/api/v1/highlights?limit=-1", "")
	assert.Equal(t, 400, status)

	_, env = s.do(t, "GET", "/api/v1/stats", "")
	var stats domain.CatalogStatistics
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 3, stats.TotalPOIs)
	assert.Equal(t, 2, stats.GeolocatedPOIs)
}

func TestFavoritesRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	status, env := s.do(t, "PUT", "/api/v1/favorites/g1", "")
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"id":"g1","is_favorite":true,"count":1}`, string(env.Data))

	_, env = s.do(t, "POST", "/api/v1/favorites/ghost/toggle", "")
	assert.JSONEq(t, `{"id":"ghost","is_favorite":true,"count":2}`, string(env.Data))

	// ghost is not in the catalog and is skipped
	_, env = s.do(t, "GET", "/api/v1/favorites/pois", "")
	assert.Equal(t, []string{"g1"}, poiIDs(t, env.Data))

	_, env = s.do(t, "DELETE", "/api/v1/favorites/g1", "")
	assert.JSONEq(t, `{"id":"g1","is_favorite":false,"count":1}`, string(env.Data))

	_, env = s.do(t, "GET", "/api/v1/favorites", "")
	assert.JSONEq(t, `{"favorites":["ghost"],"count":1}`, string(env.Data))

	stored, _ := s.favorites.Load(context.Background())
	assert.Equal(t, []string{"ghost"}, stored)

	_, env = s.do(t, "DELETE", "/api/v1/favorites", "")
	assert.JSONEq(t, `{"favorites":[],"count":0}`, string(env.Data))
}

func TestFavoritesImportExport(t *testing.T) {
	s := newTestServer(t, nil)

	status, env := s.do(t, "POST", "/api/v1/favorites/import/url",
		`{"url":"https://seeuferweg.ch/karte?favorites=g2,h1&lang=de","mode":"replace"}`)
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"imported":2,"favorites":["g2","h1"],"url":"https://seeuferweg.ch/karte?lang=de"}`, string(env.Data))

	status, env = s.do(t, "POST", "/api/v1/favorites/import/url", `{"url":"https://seeuferweg.ch","mode":"append"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)

	status, env = s.do(t, "POST", "/api/v1/favorites/import/file?mode=merge", `["g1","g2"]`)
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"imported":2,"favorites":["g2","h1","g1"]}`, string(env.Data))

	status, env = s.do(t, "POST", "/api/v1/favorites/import/file?mode=replace", `{"not":"an array"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_FAVORITES_FILE", env.Error.Code)

	status, env = s.do(t, "POST", "/api/v1/favorites/import/file", `["x1"]`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_IMPORT_MODE", env.Error.Code)
	_, env = s.do(t, "GET", "/api/v1/favorites", "")
	assert.JSONEq(t, `{"favorites":["g2","h1","g1"],"count":3}`, string(env.Data))

	status, env = s.do(t, "POST", "/api/v1/favorites/import/file?mode=append", `[]`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_IMPORT_MODE", env.Error.Code)

	_, env = s.do(t, "GET", "/api/v1/favorites/export/url?page=https%3A%2F%2Fseeuferweg.ch%2Fkarte%3Fold%3D1%23top", "")
	assert.JSONEq(t, `{"url":"https://seeuferweg.ch/karte?favorites=g2%2Ch1%2Cg1"}`, string(env.Data))

	req := httptest.NewRequest("GET", "/api/v1/favorites/export/file", nil)
	resp, err := s.server.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, `attachment; filename="seeuferweg-favorites-2026-10-16.json"`, resp.Header.Get("Content-Disposition"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "[\n  \"g2\",\n  \"h1\",\n  \"g1\"\n]", string(body))
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, map[string]handler.HealthChecker{
		"redis": checkerFunc(func(context.Context) error { return nil }),
	})

	status, raw := s.raw(t, "GET", "/api/v1/health", "")
	assert.Equal(t, 200, status)
	assert.Contains(t, string(raw), `"status":"healthy"`)
	assert.Contains(t, string(raw), `"pois":3`)

	status, raw = s.raw(t, "GET", "/metrics", "")
	assert.Equal(t, 200, status)
	assert.Contains(t, string(raw), "poi_catalog_catalog_pois 3")

	down := newTestServer(t, map[string]handler.HealthChecker{
		"postgres": checkerFunc(func(context.Context) error { return errors.New("connection refused") }),
	})
	status, raw = down.raw(t, "GET", "/api/v1/health", "")
	assert.Equal(t, 503, status)
	assert.Contains(t, string(raw), `"status":"degraded"`)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	status, env := s.do(t, "GET", "/api/v1/nope", "")
	assert.Equal(t, 404, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
