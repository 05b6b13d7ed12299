package handler

import (
	"strings"

	"github.com/seeuferweg-catalog/internal/pkg/errors"
	"github.com/seeuferweg-catalog/internal/pkg/validator"
)

// invalidRequest превращает ошибку валидации в INVALID_REQUEST с описанием полей
func invalidRequest(err error) error {
	return errors.ErrInvalidRequest.WithMessage(validator.Describe(err))
}

// splitList разбирает значение вида "a,b" из query, пустые элементы отбрасываются
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
