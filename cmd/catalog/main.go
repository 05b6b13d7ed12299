// Command catalog - консольный доступ к каталогу POI: просмотр, статистика
// и запрос перезагрузки у запущенных экземпляров API через Redis Stream.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/config"
	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/infrastructure/feed"
	"github.com/seeuferweg-catalog/internal/normalizer"
	"github.com/seeuferweg-catalog/internal/pkg/logger"
	"github.com/seeuferweg-catalog/internal/pkg/metrics"
	"github.com/seeuferweg-catalog/internal/pkg/table"
	"github.com/seeuferweg-catalog/internal/repository/cache"
	redisRepo "github.com/seeuferweg-catalog/internal/repository/redis"
	"github.com/seeuferweg-catalog/internal/usecase"
)

const usage = `Usage: catalog <command> [flags]

Commands:
  list     print catalog POIs as a table
  stats    print catalog statistics
  reload   ask running API instances to reload the catalog
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, zap.String("service", "catalog-cli"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Feeds.Timeout)
	defer cancel()

	switch os.Args[1] {
	case "list":
		err = runList(ctx, cfg, log, os.Args[2:], os.Stdout)
	case "stats":
		err = runStats(ctx, cfg, log, os.Stdout)
	case "reload":
		err = runReload(ctx, cfg, log, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Error("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
		os.Exit(1)
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config, log *zap.Logger) (*usecase.CatalogUseCase, error) {
	m := metrics.NewMetricsForTesting()
	catalogUC := usecase.NewCatalogUseCase(
		feed.NewFeedClient(&cfg.Feeds, log),
		normalizer.NewNormalizer(cfg.Region, log, m),
		m,
		clockwork.NewRealClock(),
		log,
	)
	if _, err := catalogUC.Load(ctx); err != nil {
		return nil, err
	}
	return catalogUC, nil
}

func runList(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	query := fs.String("q", "", "Search text")
	types := fs.String("type", "", "Comma-separated POI types")
	categories := fs.String("category", "", "Comma-separated categories")
	sortBy := fs.String("sort", "", "Sort order: name, location, date or price")
	maxPrice := fs.Float64("max-price", -1, "Maximum price in CHF, negative disables the filter")
	width := fs.Int("width", 40, "Maximum column width")
	if err := fs.Parse(args); err != nil {
		return err
	}

	order := domain.SortOrder(*sortBy)
	if !order.IsValid() {
		return fmt.Errorf("unknown sort order %q", *sortBy)
	}

	filter := domain.POIFilter{Query: *query, SortBy: order}
	for _, t := range splitFlag(*types) {
		filter.Types = append(filter.Types, domain.POIType(t))
	}
	filter.Categories = splitFlag(*categories)
	if *maxPrice >= 0 {
		filter.MaxPrice = maxPrice
	}

	catalogUC, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}

	tbl := table.New(*width, "ID", "Type", "Name", "Address", "Price", "Source")
	for _, poi := range catalogUC.Query(filter) {
		tbl.Append(poi.ID, string(poi.Type), poi.Name, poi.Location.Address, poi.Price, string(poi.Source))
	}
	if err := tbl.Render(out); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "\n%d POIs\n", tbl.Len())
	return err
}

func runStats(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer) error {
	catalogUC, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	stats := usecase.NewViewUseCase(catalogUC, log).Statistics()

	summary := table.New(0, "Metric", "Value")
	summary.Append("POIs", strconv.Itoa(stats.TotalPOIs))
	summary.Append("Geolocated", strconv.Itoa(stats.GeolocatedPOIs))
	summary.Append("Highlights", strconv.Itoa(stats.TotalHighlights))
	summary.Append("Activities", strconv.Itoa(stats.TotalActivities))
	summary.Append("Photo points", strconv.Itoa(stats.TotalPhotoPoints))
	for _, source := range domain.SourceOrder {
		summary.Append("Source "+string(source), strconv.Itoa(stats.BySource[source]))
	}
	if err := summary.Render(out); err != nil {
		return err
	}

	byType := table.New(0, "Type", "POIs")
	types := make([]domain.POIType, 0, len(stats.ByType))
	for t := range stats.ByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if stats.ByType[types[i]] != stats.ByType[types[j]] {
			return stats.ByType[types[i]] > stats.ByType[types[j]]
		}
		return types[i] < types[j]
	})
	for _, t := range types {
		byType.Append(string(t), strconv.Itoa(stats.ByType[t]))
	}
	fmt.Fprintln(out)
	return byType.Render(out)
}

func runReload(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	reason := fs.String("reason", "cli", "Reason recorded in the reload request")
	if err := fs.Parse(args); err != nil {
		return err
	}

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	streams := redisRepo.NewStreamRepository(redisClient.Client(), 0, log)
	event := domain.CatalogReloadEvent{Reason: *reason, RequestedAt: time.Now().UTC()}
	if err := streams.PublishToStream(ctx, domain.StreamCatalogReload, event); err != nil {
		return err
	}

	log.Info("Reload requested", zap.String("stream", domain.StreamCatalogReload), zap.String("reason", *reason))
	return nil
}

func splitFlag(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
