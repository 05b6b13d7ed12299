package handler

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/pkg/errors"
	"github.com/seeuferweg-catalog/internal/pkg/utils"
	"github.com/seeuferweg-catalog/internal/pkg/validator"
	"github.com/seeuferweg-catalog/internal/usecase"
	"github.com/seeuferweg-catalog/internal/usecase/dto"
)

// FavoritesHandler - избранное пользователя
type FavoritesHandler struct {
	favoritesUC *usecase.FavoritesUseCase
	catalogUC   *usecase.CatalogUseCase
	logger      *zap.Logger
}

func NewFavoritesHandler(favoritesUC *usecase.FavoritesUseCase, catalogUC *usecase.CatalogUseCase, logger *zap.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favoritesUC: favoritesUC,
		catalogUC:   catalogUC,
		logger:      logger,
	}
}

func (h *FavoritesHandler) state() dto.FavoritesResponse {
	ids := h.favoritesUC.GetAll()
	return dto.FavoritesResponse{Favorites: ids, Count: len(ids)}
}

func (h *FavoritesHandler) toggleResponse(id string) dto.ToggleResponse {
	return dto.ToggleResponse{
		ID:         id,
		IsFavorite: h.favoritesUC.IsFavorite(id),
		Count:      h.favoritesUC.Count(),
	}
}

// List godoc
// @Summary Избранное в порядке добавления
// @Tags Favorites
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.FavoritesResponse}
// @Router /api/v1/favorites [get]
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.state(), nil)
}

// ListPOIs godoc
// @Summary POI из избранного
// @Description Идентификаторы, которых нет в текущем каталоге, пропускаются
// @Tags Favorites
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.POI}
// @Router /api/v1/favorites/pois [get]
func (h *FavoritesHandler) ListPOIs(c *fiber.Ctx) error {
	ids := h.favoritesUC.GetAll()
	pois := make([]domain.POI, 0, len(ids))
	for _, id := range ids {
		if poi, ok := h.catalogUC.GetByID(id); ok {
			pois = append(pois, poi)
		}
	}
	return utils.SendSuccess(c, pois, &utils.Meta{Total: len(pois)})
}

// Add godoc
// @Summary Добавить POI в избранное
// @Tags Favorites
// @Produce json
// @Param id path string true "Идентификатор POI"
// @Success 200 {object} utils.SuccessResponse{data=dto.ToggleResponse}
// @Router /api/v1/favorites/{id} [put]
func (h *FavoritesHandler) Add(c *fiber.Ctx) error {
	id := c.Params("id")
	h.favoritesUC.Add(c.UserContext(), id)
	return utils.SendSuccess(c, h.toggleResponse(id), nil)
}

// Remove godoc
// @Summary Убрать POI из избранного
// @Tags Favorites
// @Produce json
// @Param id path string true "Идентификатор POI"
// @Success 200 {object} utils.SuccessResponse{data=dto.ToggleResponse}
// @Router /api/v1/favorites/{id} [delete]
func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	id := c.Params("id")
	h.favoritesUC.Remove(c.UserContext(), id)
	return utils.SendSuccess(c, h.toggleResponse(id), nil)
}

// Toggle godoc
// @Summary Переключить POI в избранном
// @Tags Favorites
// @Produce json
// @Param id path string true "Идентификатор POI"
// @Success 200 {object} utils.SuccessResponse{data=dto.ToggleResponse}
// @Router /api/v1/favorites/{id}/toggle [post]
func (h *FavoritesHandler) Toggle(c *fiber.Ctx) error {
	id := c.Params("id")
	h.favoritesUC.Toggle(c.UserContext(), id)
	return utils.SendSuccess(c, h.toggleResponse(id), nil)
}

// Clear godoc
// @Summary Очистить избранное
// @Tags Favorites
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.FavoritesResponse}
// @Router /api/v1/favorites [delete]
func (h *FavoritesHandler) Clear(c *fiber.Ctx) error {
	h.favoritesUC.Clear(c.UserContext())
	return utils.SendSuccess(c, h.state(), nil)
}

// ExportURL godoc
// @Summary Ссылка для обмена избранным
// @Tags Favorites
// @Produce json
// @Param page query string true "Адрес страницы"
// @Success 200 {object} utils.SuccessResponse{data=dto.ExportURLResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/favorites/export/url [get]
func (h *FavoritesHandler) ExportURL(c *fiber.Ctx) error {
	req := dto.ExportURLRequest{Page: c.Query("page")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	link, err := h.favoritesUC.ExportURL(req.Page)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.ExportURLResponse{URL: link}, nil)
}

// ExportFile godoc
// @Summary Скачать избранное JSON-файлом
// @Tags Favorites
// @Produce json
// @Success 200 {array} string
// @Router /api/v1/favorites/export/file [get]
func (h *FavoritesHandler) ExportFile(c *fiber.Ctx) error {
	filename, data, err := h.favoritesUC.ExportFile()
	if err != nil {
		h.logger.Error("Failed to export favorites", zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// ImportURL godoc
// @Summary Импорт избранного из ссылки
// @Description Берёт идентификаторы из параметра favorites и возвращает ссылку без него
// @Tags Favorites
// @Accept json
// @Produce json
// @Param request body dto.ImportURLRequest true "Ссылка и режим replace|merge"
// @Success 200 {object} utils.SuccessResponse{data=dto.ImportResult}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/favorites/import/url [post]
func (h *FavoritesHandler) ImportURL(c *fiber.Ctx) error {
	var req dto.ImportURLRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	result, err := h.favoritesUC.ImportFromURL(c.UserContext(), req.URL, domain.ImportMode(req.Mode))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// ImportFile godoc
// @Summary Импорт избранного из JSON-файла
// @Tags Favorites
// @Accept json
// @Produce json
// @Param mode query string true "replace или merge"
// @Param request body []string true "Массив идентификаторов"
// @Success 200 {object} utils.SuccessResponse{data=dto.ImportResult}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/favorites/import/file [post]
func (h *FavoritesHandler) ImportFile(c *fiber.Ctx) error {
	// режим обязателен, как и при импорте из ссылки
	mode := domain.ImportMode(c.Query("mode"))
	if !mode.IsValid() {
		return utils.SendError(c, errors.ErrInvalidImportMode)
	}

	body := c.Body()
	result, err := h.favoritesUC.ImportFile(c.UserContext(), bytes.NewReader(body), mode)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
