package normalizer

import "github.com/seeuferweg-catalog/internal/domain"

// NormalizeRapperswil - фид Rapperswil-Jona содержит только дерево категорий без POI,
// поэтому результат всегда пустой
func NormalizeRapperswil(nodes []domain.RapperswilNode) []domain.POI {
	return []domain.POI{}
}
