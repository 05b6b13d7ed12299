package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/pkg/errors"
	"github.com/seeuferweg-catalog/internal/pkg/utils"
	"github.com/seeuferweg-catalog/internal/pkg/validator"
	"github.com/seeuferweg-catalog/internal/usecase"
	"github.com/seeuferweg-catalog/internal/usecase/dto"
)

// CatalogHandler - запросы к каталогу POI
type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
	logger    *zap.Logger
}

// NewCatalogHandler - создание нового CatalogHandler
func NewCatalogHandler(catalogUC *usecase.CatalogUseCase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// ListPOIs godoc
// @Summary Список POI с поиском, фильтрами и сортировкой
// @Description Поиск по имени, описанию, адресу и категориям без учёта регистра. Фильтры по типу и категориям, сортировка по имени, месту, дате изменения или цене.
// @Tags Catalog
// @Produce json
// @Param q query string false "Строка поиска"
// @Param type query string false "Типы через запятую (restaurant,webcam)"
// @Param category query string false "Категории через запятую, совпадение с любой"
// @Param max_price query number false "Максимальная цена в CHF, POI без цены не отсекаются"
// @Param sort query string false "name, location, date или price"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.POI}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/pois [get]
func (h *CatalogHandler) ListPOIs(c *fiber.Ctx) error {
	req := dto.POIListRequest{
		Query:      c.Query("q"),
		Types:      splitList(c.Query("type")),
		Categories: splitList(c.Query("category")),
		Sort:       c.Query("sort"),
	}
	if raw := c.Query("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"max_price": "must be a number",
			}))
		}
		req.MaxPrice = &maxPrice
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	filter := domain.POIFilter{
		Query:      req.Query,
		Categories: req.Categories,
		MaxPrice:   req.MaxPrice,
		SortBy:     domain.SortOrder(req.Sort),
	}
	for _, t := range req.Types {
		filter.Types = append(filter.Types, domain.POIType(t))
	}

	pois := h.catalogUC.Query(filter)
	return utils.SendSuccess(c, pois, &utils.Meta{Total: len(pois)})
}

// GetPOI godoc
// @Summary POI по идентификатору
// @Tags Catalog
// @Produce json
// @Param id path string true "Идентификатор POI"
// @Success 200 {object} utils.SuccessResponse{data=domain.POI}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/pois/{id} [get]
func (h *CatalogHandler) GetPOI(c *fiber.Ctx) error {
	poi, ok := h.catalogUC.GetByID(c.Params("id"))
	if !ok {
		return utils.SendError(c, errors.ErrPOINotFound)
	}
	return utils.SendSuccess(c, poi, nil)
}

// Nearby godoc
// @Summary POI в радиусе от точки
// @Tags Catalog
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param radius_km query number false "Радиус в км (0.1 - 50)" default(2)
// @Success 200 {object} utils.SuccessResponse{data=[]dto.NearbyPOI}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/pois/nearby [get]
func (h *CatalogHandler) Nearby(c *fiber.Ctx) error {
	var req dto.NearbyRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	result, err := h.catalogUC.Nearby(req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}

// GetTypes godoc
// @Summary Типы POI, встречающиеся в каталоге
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]string}
// @Router /api/v1/types [get]
func (h *CatalogHandler) GetTypes(c *fiber.Ctx) error {
	types := h.catalogUC.GetTypes()
	return utils.SendSuccess(c, types, &utils.Meta{Total: len(types)})
}

// GetCategories godoc
// @Summary Категории POI, встречающиеся в каталоге
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]string}
// @Router /api/v1/categories [get]
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories := h.catalogUC.GetCategories()
	return utils.SendSuccess(c, categories, &utils.Meta{Total: len(categories)})
}

// GetMarkers godoc
// @Summary Маркеры для карты
// @Description Только POI с координатами
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Marker}
// @Router /api/v1/markers [get]
func (h *CatalogHandler) GetMarkers(c *fiber.Ctx) error {
	markers := h.catalogUC.Markers()
	return utils.SendSuccess(c, markers, &utils.Meta{Total: len(markers)})
}

// Reload godoc
// @Summary Перезагрузка каталога из фидов
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ReloadResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/catalog/reload [post]
func (h *CatalogHandler) Reload(c *fiber.Ctx) error {
	total, err := h.catalogUC.Load(c.UserContext())
	if err != nil {
		h.logger.Error("Catalog reload failed", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.ReloadResponse{Total: total}, nil)
}
