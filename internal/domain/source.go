package domain

// Source - идентификатор регионального фида
type Source string

const (
	SourceGlarnerland Source = "glarnerland"
	SourceHeidiland   Source = "heidiland"
	SourceRapperswil  Source = "rapperswil"
)

// SourceOrder - порядок источников при сборке каталога
var SourceOrder = []Source{SourceGlarnerland, SourceHeidiland, SourceRapperswil}

// IsValid проверяет, что источник известен
func (s Source) IsValid() bool {
	for _, known := range SourceOrder {
		if s == known {
			return true
		}
	}
	return false
}

// GlarnerlandRecord - запись фида Glarnerland (schema.org). Координаты обязательны
type GlarnerlandRecord struct {
	Identifier                FlexString    `json:"identifier"`
	Type                      SchemaType    `json:"@type"`
	AdditionalType            SchemaType    `json:"additionalType"`
	Name                      LocalizedText `json:"name"`
	Description               LocalizedText `json:"description"`
	DisambiguatingDescription LocalizedText `json:"disambiguatingDescription"`
	OpeningHours              LocalizedText `json:"openingHours"`
	Geo                       *RawGeo       `json:"geo"`
	Address                   *RawAddress   `json:"address"`
	Telephone                 FlexString    `json:"telephone"`
	Email                     FlexString    `json:"email"`
	URL                       FlexString    `json:"url"`
	Image                     ImageList     `json:"image"`
	Photo                     ImageList     `json:"photo"`
	PriceRange                FlexString    `json:"priceRange"`
	DateModified              FlexString    `json:"dateModified"`
}

// HeidilandRecord - запись фида Heidiland. Координат нет
type HeidilandRecord struct {
	Identifier                FlexString    `json:"identifier"`
	ID                        FlexString    `json:"id"`
	AtType                    SchemaType    `json:"@type"`
	Type                      SchemaType    `json:"type"`
	AdditionalType            SchemaType    `json:"additionalType"`
	Name                      LocalizedText `json:"name"`
	Description               LocalizedText `json:"description"`
	DisambiguatingDescription LocalizedText `json:"disambiguatingDescription"`
	Abstract                  LocalizedText `json:"abstract"`
	OpeningHours              LocalizedText `json:"openingHours"`
	OpeningHoursSpecification LocalizedText `json:"openingHoursSpecification"`
	Address                   *RawAddress   `json:"address"`
	Telephone                 FlexString    `json:"telephone"`
	Email                     FlexString    `json:"email"`
	URL                       FlexString    `json:"url"`
	Offers                    *RawOffer     `json:"offers"`
	PriceRange                FlexString    `json:"priceRange"`
	Image                     ImageList     `json:"image"`
	Photo                     ImageList     `json:"photo"`
	DateModified              FlexString    `json:"dateModified"`
	Modified                  FlexString    `json:"modified"`
}

// RapperswilNode - узел таксономии фида Rapperswil-Jona
type RapperswilNode struct {
	ID       FlexString       `json:"id"`
	Name     LocalizedText    `json:"name"`
	Children []RapperswilNode `json:"children"`
}

// RawGeo - координаты в сыром виде: числа или строки
type RawGeo struct {
	Latitude  FlexFloat `json:"latitude"`
	Longitude FlexFloat `json:"longitude"`
}

// RawAddress - адрес schema.org
type RawAddress struct {
	StreetAddress   FlexString `json:"streetAddress"`
	AddressLocality FlexString `json:"addressLocality"`
	PostalCode      FlexString `json:"postalCode"`
	Telephone       FlexString `json:"telephone"`
	Email           FlexString `json:"email"`
	URL             FlexString `json:"url"`
}

// RawOffer - предложение с текстовым описанием цены
type RawOffer struct {
	URL         FlexString    `json:"url"`
	Description LocalizedText `json:"description"`
}
