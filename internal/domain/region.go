package domain

// BoundingBox - прямоугольная область на карте
type BoundingBox struct {
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MinLon float64 `json:"min_lon" yaml:"min_lon"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
	MaxLon float64 `json:"max_lon" yaml:"max_lon"`
}

// WalenseeRegion - регион Walensee, для которого строится каталог
var WalenseeRegion = BoundingBox{
	MinLat: 46.9,
	MaxLat: 47.2,
	MinLon: 8.95,
	MaxLon: 9.25,
}

// Contains проверяет попадание точки в область, границы включительно
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// IsZero сообщает, что область не задана
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}
