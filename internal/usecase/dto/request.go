package dto

// POIListRequest - параметры списка POI
type POIListRequest struct {
	Query      string   `query:"q" validate:"omitempty,max=200"`
	Types      []string `validate:"omitempty,dive,oneof=accommodation restaurant attraction webcam camping package entertainment event wellness place nature infrastructure service shopping sport other"`
	Categories []string `validate:"omitempty,dive,max=100"`
	MaxPrice   *float64 `query:"max_price" validate:"omitempty,gte=0"`
	Sort       string   `query:"sort" validate:"omitempty,oneof=name location date price"`
}

// NearbyRequest - запрос POI в радиусе от точки
type NearbyRequest struct {
	Lat      float64 `query:"lat" validate:"required,min=-90,max=90"`
	Lon      float64 `query:"lon" validate:"required,min=-180,max=180"`
	RadiusKm float64 `query:"radius_km" validate:"omitempty,min=0.1,max=50"`
}

// HighlightsRequest - запрос подборки лучших POI
type HighlightsRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ImportURLRequest - импорт избранного из ссылки
type ImportURLRequest struct {
	URL  string `json:"url" validate:"required,url"`
	Mode string `json:"mode" validate:"required,oneof=replace merge"`
}

// ExportURLRequest - построение ссылки на избранное
type ExportURLRequest struct {
	Page string `query:"page" validate:"required,url"`
}
