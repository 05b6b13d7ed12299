package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/config"
	"github.com/seeuferweg-catalog/internal/delivery/http/handler"
	"github.com/seeuferweg-catalog/internal/delivery/http/middleware"
	"github.com/seeuferweg-catalog/internal/pkg/errors"
	"github.com/seeuferweg-catalog/internal/pkg/utils"
)

// Handlers - обработчики, из которых собирается API
type Handlers struct {
	Catalog   *handler.CatalogHandler
	Views     *handler.ViewHandler
	Favorites *handler.FavoritesHandler
	Health    *handler.HealthHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	gatherer prometheus.Gatherer
}

// NewServer - создание нового HTTP сервера. gatherer отдаётся на /metrics, nil означает реестр по умолчанию
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers, gatherer prometheus.Gatherer) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	app := fiber.New(fiber.Config{
		AppName:      "Seeuferweg POI Catalog",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    1 << 20,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		gatherer: gatherer,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - fiber приложение, используется в тестах через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := s.app.Group("/api/v1")
	api.Get("/health", s.handlers.Health.Health)

	// Catalog
	api.Get("/pois", s.handlers.Catalog.ListPOIs)
	api.Get("/pois/nearby", s.handlers.Catalog.Nearby)
	api.Get("/pois/:id", s.handlers.Catalog.GetPOI)
	api.Get("/types", s.handlers.Catalog.GetTypes)
	api.Get("/categories", s.handlers.Catalog.GetCategories)
	api.Get("/markers", s.handlers.Catalog.GetMarkers)
	api.Post("/catalog/reload", s.handlers.Catalog.Reload)

	// Views
	api.Get("/highlights", s.handlers.Views.GetHighlights)
	api.Get("/activities", s.handlers.Views.GetActivities)
	api.Get("/photo-points", s.handlers.Views.GetPhotoPoints)
	api.Get("/stats", s.handlers.Views.GetStatistics)

	// Favorites: статические пути раньше :id
	favorites := api.Group("/favorites")
	favorites.Get("/", s.handlers.Favorites.List)
	favorites.Delete("/", s.handlers.Favorites.Clear)
	favorites.Get("/pois", s.handlers.Favorites.ListPOIs)
	favorites.Get("/export/url", s.handlers.Favorites.ExportURL)
	favorites.Get("/export/file", s.handlers.Favorites.ExportFile)
	favorites.Post("/import/url", s.handlers.Favorites.ImportURL)
	favorites.Post("/import/file", s.handlers.Favorites.ImportFile)
	favorites.Put("/:id", s.handlers.Favorites.Add)
	favorites.Delete("/:id", s.handlers.Favorites.Remove)
	favorites.Post("/:id/toggle", s.handlers.Favorites.Toggle)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler отвечает в общем формате ошибок для ошибок самого fiber (404 маршрута, паника)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			if e.Code >= fiber.StatusInternalServerError {
				logger.Error("HTTP Error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(e.Code).JSON(utils.ErrorResponse{
				Error: errors.New(httpErrorCode(e.Code), e.Message, e.Code),
			})
		}

		logger.Error("HTTP Error", zap.String("path", c.Path()), zap.Error(err))
		return utils.SendError(c, err)
	}
}

func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "INVALID_REQUEST"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
