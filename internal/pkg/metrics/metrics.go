package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "poi_catalog"

// Metrics - счётчики и гистограммы каталога и избранного
type Metrics struct {
	// Фиды и нормализация
	FeedFetches    *prometheus.CounterVec // labels: source, outcome={success,error}
	RecordsSkipped *prometheus.CounterVec // labels: source
	CatalogPOIs    prometheus.Gauge
	CatalogLoad    prometheus.Histogram

	// Избранное
	FavoritesMutations *prometheus.CounterVec // labels: op
	FavoritesCount     prometheus.Gauge
	NotifyErrors       prometheus.Counter
}

// NewMetrics создаёт метрики и регистрирует их в глобальном реестре Prometheus
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry регистрирует метрики в reg
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.FeedFetches,
		m.RecordsSkipped,
		m.CatalogPOIs,
		m.CatalogLoad,
		m.FavoritesMutations,
		m.FavoritesCount,
		m.NotifyErrors,
	)
	return m
}

// NewMetricsForTesting создаёт метрики без регистрации
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_fetches_total",
			Help:      "Feed fetch attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Raw records dropped during normalization.",
		}, []string{"source"}),
		CatalogPOIs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_pois",
			Help:      "Number of POIs in the current catalog snapshot.",
		}),
		CatalogLoad: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_load_duration_seconds",
			Help:      "Duration of a full catalog load.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FavoritesMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorites_mutations_total",
			Help:      "Favorites mutations by operation.",
		}, []string{"op"}),
		FavoritesCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "favorites_count",
			Help:      "Current number of favorites.",
		}),
		NotifyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notify_errors_total",
			Help:      "Failed favorites change notifications.",
		}),
	}
}
