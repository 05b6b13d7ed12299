package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/pkg/utils"
)

// HealthChecker - зависимость, доступность которой отражается в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// CatalogInfo - сведения о снимке каталога для /health
type CatalogInfo interface {
	Count() int
	LoadedAt() time.Time
}

// HealthHandler - проверка состояния сервиса
type HealthHandler struct {
	catalog  CatalogInfo
	checkers map[string]HealthChecker
	clock    clockwork.Clock
	logger   *zap.Logger
}

func NewHealthHandler(catalog CatalogInfo, checkers map[string]HealthChecker, clock clockwork.Clock, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		catalog:  catalog,
		checkers: checkers,
		clock:    clock,
		logger:   logger,
	}
}

// Health godoc
// @Summary Состояние сервиса
// @Description healthy, если все подключённые хранилища отвечают. Иначе 503 и status degraded
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=map[string]interface{}}
// @Failure 503 {object} utils.SuccessResponse{data=map[string]interface{}}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	deps := make(fiber.Map, len(h.checkers))
	for name, checker := range h.checkers {
		if err := checker.Health(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	return utils.SendStatus(c, code, fiber.Map{
		"status":       status,
		"time":         h.clock.Now(),
		"pois":         h.catalog.Count(),
		"loaded_at":    h.catalog.LoadedAt(),
		"dependencies": deps,
	}, nil)
}
