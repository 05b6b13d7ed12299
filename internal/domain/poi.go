package domain

import "time"

// POI представляет нормализованную точку интереса региона
type POI struct {
	ID           string   `json:"id"`
	Source       Source   `json:"source"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Type         POIType  `json:"type"`
	Category     []string `json:"category"`
	Location     Location `json:"location"`
	Images       []string `json:"images"`
	Contact      Contact  `json:"contact"`
	OpeningHours string   `json:"opening_hours,omitempty"`
	Price        string   `json:"price,omitempty"`
	// PriceCHF - первое число из текста цены. nil, если числа нет
	PriceCHF     *float64 `json:"price_chf,omitempty"`
	DateModified string   `json:"date_modified,omitempty"`
}

// Clone возвращает глубокую копию: срезы и координаты не разделяются с исходным POI
func (p POI) Clone() POI {
	p.Category = cloneStrings(p.Category)
	p.Images = cloneStrings(p.Images)
	p.Location.Lat = cloneFloat(p.Location.Lat)
	p.Location.Lon = cloneFloat(p.Location.Lon)
	p.PriceCHF = cloneFloat(p.PriceCHF)
	return p
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Location - координаты и адрес POI. Lat/Lon равны nil, если координат нет
type Location struct {
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	Address    string   `json:"address"`
	PostalCode string   `json:"postal_code"`
}

// HasCoordinates сообщает, есть ли у локации обе координаты
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// Contact - контактные данные POI
type Contact struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// ModifiedAt разбирает DateModified. ok=false, если дата пустая или некорректная
func (p POI) ModifiedAt() (time.Time, bool) {
	if p.DateModified == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, p.DateModified); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Marker - представление POI для карты
type Marker struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Type POIType `json:"type"`
	Icon string  `json:"icon"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// POIFilter - параметры выборки из каталога
type POIFilter struct {
	Query      string
	Types      []POIType
	Categories []string
	// MaxPrice отсекает POI дороже порога. POI без цены проходят всегда
	MaxPrice *float64
	SortBy   SortOrder
}

// SortOrder - порядок сортировки списка POI
type SortOrder string

const (
	SortNone     SortOrder = ""
	SortName     SortOrder = "name"
	SortLocation SortOrder = "location"
	SortDate     SortOrder = "date"
	// SortPrice - по возрастанию цены, POI без цены считаются бесплатными
	SortPrice SortOrder = "price"
)

// IsValid проверяет, что порядок сортировки поддерживается
func (s SortOrder) IsValid() bool {
	switch s {
	case SortNone, SortName, SortLocation, SortDate, SortPrice:
		return true
	}
	return false
}
