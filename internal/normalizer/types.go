package normalizer

import "github.com/seeuferweg-catalog/internal/domain"

// typeMap сопоставляет теги schema.org/discover.swiss каноническим типам
var typeMap = map[string]domain.POIType{
	// Проживание
	"LodgingBusiness":    domain.POITypeAccommodation,
	"Hotel":              domain.POITypeAccommodation,
	"HolidayApartment":   domain.POITypeAccommodation,
	"BedAndBreakfast":    domain.POITypeAccommodation,
	"FarmLodging":        domain.POITypeAccommodation,
	"GroupAccommodation": domain.POITypeAccommodation,
	"Accommodation":      domain.POITypeAccommodation,

	// Гастрономия
	"Restaurant":         domain.POITypeRestaurant,
	"FoodEstablishment":  domain.POITypeRestaurant,
	"MountainRestaurant": domain.POITypeRestaurant,
	"BarOrPub":           domain.POITypeRestaurant,
	"CafeOrCoffeeShop":   domain.POITypeRestaurant,
	"FastFoodRestaurant": domain.POITypeRestaurant,
	"Bistro":             domain.POITypeRestaurant,
	"Imbiss":             domain.POITypeRestaurant,

	// Достопримечательности
	"TouristAttraction":   domain.POITypeAttraction,
	"Experience":          domain.POITypeAttraction,
	"Museum":              domain.POITypeAttraction,
	"GuidedTour":          domain.POITypeAttraction,
	"ShipTour":            domain.POITypeAttraction,
	"NatureTrail":         domain.POITypeAttraction,
	"ThemeTrail":          domain.POITypeAttraction,
	"HikingTrail":         domain.POITypeAttraction,
	"TobogganRun":         domain.POITypeAttraction,
	"SummerTobogganTrack": domain.POITypeAttraction,
	"HighRopesCourse":     domain.POITypeAttraction,
	"MinigolfCourse":      domain.POITypeAttraction,
	"Playground":          domain.POITypeAttraction,
	"BikePark":            domain.POITypeAttraction,
	"Viewpoint":           domain.POITypeAttraction,
	"Monument":            domain.POITypeAttraction,
	"Ruin":                domain.POITypeAttraction,

	// Спорт и велнес
	"GolfCourse":      domain.POITypeSport,
	"SkiSlope":        domain.POITypeSport,
	"SkiLift":         domain.POITypeSport,
	"CableCarStation": domain.POITypeSport,
	"CableCar":        domain.POITypeSport,
	"SportHall":       domain.POITypeSport,
	"TennisComplex":   domain.POITypeSport,
	"SkiSchool":       domain.POITypeSport,
	"ThermalSpa":      domain.POITypeWellness,
	"IndoorPool":      domain.POITypeWellness,
	"Sauna":           domain.POITypeWellness,

	// Природа и места
	"Place":           domain.POITypePlace,
	"LakeBodyOfWater": domain.POITypeNature,
	"Alp":             domain.POITypeNature,

	// Сервисы
	"Webcam":             domain.POITypeWebcam,
	"CivicStructure":     domain.POITypeInfrastructure,
	"Services":           domain.POITypeService,
	"BikeRental":         domain.POITypeService,
	"BikeStore":          domain.POITypeService,
	"SportingGoodsStore": domain.POITypeService,

	// Кемпинг
	"RVPark":     domain.POITypeCamping,
	"Campground": domain.POITypeCamping,
	"Pitch":      domain.POITypeCamping,

	// Магазины
	"Winery":           domain.POITypeShopping,
	"Vinotheque":       domain.POITypeShopping,
	"FarmShop":         domain.POITypeShopping,
	"ButcherShop":      domain.POITypeShopping,
	"Dairy":            domain.POITypeShopping,
	"ConvenienceStore": domain.POITypeShopping,
	"ShoppingCenter":   domain.POITypeShopping,
	"OutletStore":      domain.POITypeShopping,
	"Store":            domain.POITypeShopping,
	"BookStore":        domain.POITypeShopping,
	"Farm":             domain.POITypeShopping,

	// Прочее
	"Package":        domain.POITypePackage,
	"Offer":          domain.POITypePackage,
	"Casino":         domain.POITypeEntertainment,
	"Cinema":         domain.POITypeEntertainment,
	"CongressCenter": domain.POITypeEvent,
}

// CategorizeType возвращает канонический тип. primary имеет приоритет над additional
func CategorizeType(primary, additional string) domain.POIType {
	if t, ok := typeMap[primary]; ok {
		return t
	}
	if t, ok := typeMap[additional]; ok {
		return t
	}
	return domain.POITypeOther
}

// ExtractCategory собирает непустые сырые теги в порядке primary, additional
func ExtractCategory(primary, additional string) []string {
	category := make([]string, 0, 2)
	if primary != "" {
		category = append(category, primary)
	}
	if additional != "" {
		category = append(category, additional)
	}
	return category
}
