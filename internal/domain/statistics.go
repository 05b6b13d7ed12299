package domain

import "time"

// CatalogStatistics - сводка по каталогу и производным представлениям
type CatalogStatistics struct {
	TotalPOIs        int             `json:"total_pois"`
	TotalHighlights  int             `json:"total_highlights"`
	TotalActivities  int             `json:"total_activities"`
	TotalPhotoPoints int             `json:"total_photo_points"`
	GeolocatedPOIs   int             `json:"geolocated_pois"`
	ByType           map[POIType]int `json:"by_type"`
	BySource         map[Source]int  `json:"by_source"`
	LoadedAt         time.Time       `json:"loaded_at"`
}
