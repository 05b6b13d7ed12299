package domain

// POIType - каноническая категория POI
type POIType string

// Канонические типы POI
const (
	POITypeAccommodation  POIType = "accommodation"
	POITypeRestaurant     POIType = "restaurant"
	POITypeAttraction     POIType = "attraction"
	POITypeWebcam         POIType = "webcam"
	POITypeCamping        POIType = "camping"
	POITypePackage        POIType = "package"
	POITypeEntertainment  POIType = "entertainment"
	POITypeEvent          POIType = "event"
	POITypeWellness       POIType = "wellness"
	POITypePlace          POIType = "place"
	POITypeNature         POIType = "nature"
	POITypeInfrastructure POIType = "infrastructure"
	POITypeService        POIType = "service"
	POITypeShopping       POIType = "shopping"
	POITypeSport          POIType = "sport"
	POITypeOther          POIType = "other"
)

// AllPOITypes возвращает все канонические типы в фиксированном порядке
func AllPOITypes() []POIType {
	return []POIType{
		POITypeAccommodation,
		POITypeRestaurant,
		POITypeAttraction,
		POITypeWebcam,
		POITypeCamping,
		POITypePackage,
		POITypeEntertainment,
		POITypeEvent,
		POITypeWellness,
		POITypePlace,
		POITypeNature,
		POITypeInfrastructure,
		POITypeService,
		POITypeShopping,
		POITypeSport,
		POITypeOther,
	}
}

// IsValid проверяет, что тип входит в закрытый набор
func (t POIType) IsValid() bool {
	for _, known := range AllPOITypes() {
		if t == known {
			return true
		}
	}
	return false
}

var markerIcons = map[POIType]string{
	POITypeAccommodation:  "bed",
	POITypeRestaurant:     "utensils",
	POITypeAttraction:     "star",
	POITypeWebcam:         "video",
	POITypeCamping:        "campground",
	POITypePackage:        "gift",
	POITypeEntertainment:  "ticket",
	POITypeEvent:          "calendar",
	POITypeWellness:       "spa",
	POITypePlace:          "map-pin",
	POITypeNature:         "tree",
	POITypeInfrastructure: "building",
	POITypeService:        "info",
	POITypeShopping:       "shopping-bag",
	POITypeSport:          "person-running",
	POITypeOther:          "map-pin",
}

// MarkerIcon возвращает иконку карты для типа POI
func MarkerIcon(t POIType) string {
	if icon, ok := markerIcons[t]; ok {
		return icon
	}
	return "map-pin"
}
