package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/seeuferweg-catalog/internal/pkg/errors"
)

// SuccessResponse - конверт успешного ответа API
type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// ErrorResponse - конверт ошибки API
type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// Meta - сведения о списке в ответе
type Meta struct {
	Total int `json:"total"`
	Limit int `json:"limit,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return SendStatus(c, fiber.StatusOK, data, meta)
}

// SendStatus отправляет данные в конверте с произвольным статусом (например 503 для /health)
func SendStatus(c *fiber.Ctx, status int, data interface{}, meta *Meta) error {
	return c.Status(status).JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// неизвестная ошибка наружу не отдаётся
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
