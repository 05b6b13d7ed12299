package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/pkg/utils"
	"github.com/seeuferweg-catalog/internal/pkg/validator"
	"github.com/seeuferweg-catalog/internal/usecase"
	"github.com/seeuferweg-catalog/internal/usecase/dto"
)

// ViewHandler - подборки и статистика каталога
type ViewHandler struct {
	viewUC *usecase.ViewUseCase
	logger *zap.Logger
}

func NewViewHandler(viewUC *usecase.ViewUseCase, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{
		viewUC: viewUC,
		logger: logger,
	}
}

// GetHighlights godoc
// @Summary Лучшие POI по баллу привлекательности
// @Tags Views
// @Produce json
// @Param limit query int false "Размер подборки" default(6)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.POI}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/highlights [get]
func (h *ViewHandler) GetHighlights(c *fiber.Ctx) error {
	req := dto.HighlightsRequest{Limit: c.QueryInt("limit", usecase.DefaultHighlightsLimit)}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	pois := h.viewUC.Highlights(req.Limit)
	return utils.SendSuccess(c, pois, &utils.Meta{Total: len(pois), Limit: req.Limit})
}

// GetActivities godoc
// @Summary Активности
// @Tags Views
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.POI}
// @Router /api/v1/activities [get]
func (h *ViewHandler) GetActivities(c *fiber.Ctx) error {
	pois := h.viewUC.Activities()
	return utils.SendSuccess(c, pois, &utils.Meta{Total: len(pois)})
}

// GetPhotoPoints godoc
// @Summary Фототочки
// @Tags Views
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.POI}
// @Router /api/v1/photo-points [get]
func (h *ViewHandler) GetPhotoPoints(c *fiber.Ctx) error {
	pois := h.viewUC.PhotoPoints()
	return utils.SendSuccess(c, pois, &utils.Meta{Total: len(pois)})
}

// GetStatistics godoc
// @Summary Статистика каталога
// @Tags Views
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.CatalogStatistics}
// @Router /api/v1/stats [get]
func (h *ViewHandler) GetStatistics(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.viewUC.Statistics(), nil)
}
