package main

// @title Seeuferweg POI Catalog API
// @version 1.0.0
// @description Каталог туристических POI региона Валензее из фидов Glarnerland, Heidiland и Rapperswil-Zürichsee.
// @description
// @description Основные возможности:
// @description - Поиск, фильтры и сортировка POI
// @description - Подборки лучших мест, активностей и фототочек
// @description - Избранное с импортом и экспортом через ссылку или файл

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	_ "github.com/seeuferweg-catalog/docs"
	"github.com/seeuferweg-catalog/internal/config"
	httpDelivery "github.com/seeuferweg-catalog/internal/delivery/http"
	"github.com/seeuferweg-catalog/internal/delivery/http/handler"
	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/domain/repository"
	"github.com/seeuferweg-catalog/internal/infrastructure/feed"
	"github.com/seeuferweg-catalog/internal/normalizer"
	"github.com/seeuferweg-catalog/internal/pkg/logger"
	"github.com/seeuferweg-catalog/internal/pkg/metrics"
	"github.com/seeuferweg-catalog/internal/repository/bolt"
	"github.com/seeuferweg-catalog/internal/repository/cache"
	"github.com/seeuferweg-catalog/internal/repository/kafka"
	"github.com/seeuferweg-catalog/internal/repository/memory"
	"github.com/seeuferweg-catalog/internal/repository/postgres"
	redisRepo "github.com/seeuferweg-catalog/internal/repository/redis"
	"github.com/seeuferweg-catalog/internal/usecase"
	"github.com/seeuferweg-catalog/internal/worker"
	catalogWorker "github.com/seeuferweg-catalog/internal/worker/catalog"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Logger
	log, err := logger.New(cfg.Log.Level, zap.String("service", "seeuferweg-catalog"))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Seeuferweg POI Catalog",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("favorites_backend", cfg.Favorites.Backend),
		zap.String("notify_backend", cfg.Notify.Backend),
	)

	clock := clockwork.NewRealClock()
	m := metrics.NewMetrics()
	checkers := make(map[string]handler.HealthChecker)
	var closers []func() error

	// 3. Redis (избранное, публикация изменений, стрим перезагрузки)
	var redisClient *cache.Redis
	needRedis := cfg.Favorites.Backend == config.FavoritesBackendRedis ||
		cfg.Notify.Backend == config.NotifyRedis ||
		cfg.Worker.Enabled
	if needRedis {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		switch {
		case err == nil:
			checkers["redis"] = redisClient
			closers = append(closers, redisClient.Close)
		case cfg.Favorites.Backend == config.FavoritesBackendRedis || cfg.Notify.Backend == config.NotifyRedis:
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		default:
			log.Warn("Redis unavailable, reload stream disabled", zap.Error(err))
		}
	}

	// 4. Favorites storage
	favoritesRepo, closeStore, err := openFavoritesRepository(cfg, redisClient, checkers, log)
	if err != nil {
		log.Fatal("Failed to open favorites storage", zap.Error(err))
	}
	if closeStore != nil {
		closers = append(closers, closeStore)
	}

	// 5. Use cases
	catalogUC := usecase.NewCatalogUseCase(
		feed.NewFeedClient(&cfg.Feeds, log),
		normalizer.NewNormalizer(cfg.Region, log, m),
		m,
		clock,
		log,
	)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*cfg.Feeds.Timeout)
	if _, err := catalogUC.Load(loadCtx); err != nil {
		log.Error("Initial catalog load failed, starting with empty catalog", zap.Error(err))
	}
	cancelLoad()

	broadcaster := usecase.NewBroadcaster()
	unsubscribe := broadcaster.Subscribe(func(event domain.FavoritesChangedEvent) {
		log.Debug("Favorites changed", zap.Int("count", event.Count))
	})
	defer unsubscribe()

	publishers := []repository.EventPublisher{broadcaster}
	switch cfg.Notify.Backend {
	case config.NotifyRedis:
		streams := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
		publishers = append(publishers, redisRepo.NewEventPublisher(streams))
	case config.NotifyKafka:
		publisher := kafka.NewPublisher(&cfg.Kafka, log)
		publishers = append(publishers, publisher)
		closers = append(closers, publisher.Close)
	}

	favoritesUC := usecase.NewFavoritesUseCase(
		context.Background(),
		favoritesRepo,
		publishers,
		clock,
		cfg.Favorites.AppName,
		m,
		log,
	)
	viewUC := usecase.NewViewUseCase(catalogUC, log)

	// 6. Workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var workerManager *worker.WorkerManager
	if cfg.Worker.Enabled || cfg.Worker.ReloadInterval > 0 {
		var streams repository.StreamRepository
		if cfg.Worker.Enabled && redisClient != nil {
			streams = redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
		}
		workerManager = worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
		workerManager.Register(catalogWorker.NewReloadWorker(
			streams,
			catalogUC,
			clock,
			cfg.Worker.ReloadInterval,
			cfg.Worker.ConsumerGroup,
			log,
		))
		if err := workerManager.Start(ctx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 7. HTTP server
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Catalog:   handler.NewCatalogHandler(catalogUC, log),
		Views:     handler.NewViewHandler(viewUC, log),
		Favorites: handler.NewFavoritesHandler(favoritesUC, catalogUC, log),
		Health:    handler.NewHealthHandler(catalogUC, checkers, clock, log),
	}, nil)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.Int("pois", catalogUC.Count()),
		zap.Int("favorites", favoritesUC.Count()),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workerManager != nil {
		if err := workerManager.Stop(); err != nil {
			log.Error("Worker shutdown error", zap.Error(err))
		}
	}
	cancel()

	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			log.Error("Failed to close resource", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}

// openFavoritesRepository открывает хранилище избранного по FAVORITES_BACKEND.
// Возвращает функцию закрытия, если хранилище владеет ресурсом
func openFavoritesRepository(
	cfg *config.Config,
	redisClient *cache.Redis,
	checkers map[string]handler.HealthChecker,
	log *zap.Logger,
) (repository.FavoritesRepository, func() error, error) {
	switch cfg.Favorites.Backend {
	case config.FavoritesBackendRedis:
		return cache.NewFavoritesRepository(redisClient, cfg.Favorites.StorageKey), nil, nil

	case config.FavoritesBackendPostgres:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		checkers["postgres"] = db
		return postgres.NewFavoritesRepository(db, cfg.Favorites.StorageKey), db.Close, nil

	case config.FavoritesBackendMemory:
		return memory.NewFavoritesRepository(), nil, nil

	default:
		store, err := bolt.Open(cfg.Favorites.BoltPath, log)
		if err != nil {
			return nil, nil, err
		}
		return bolt.NewFavoritesRepository(store, cfg.Favorites.StorageKey), store.Close, nil
	}
}
