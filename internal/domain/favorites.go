package domain

// ImportMode - режим импорта избранного
type ImportMode string

const (
	ImportReplace ImportMode = "replace"
	ImportMerge   ImportMode = "merge"
)

// IsValid проверяет режим импорта
func (m ImportMode) IsValid() bool {
	return m == ImportReplace || m == ImportMerge
}

// FavoritesQueryParam - параметр URL со списком избранного
const FavoritesQueryParam = "favorites"
