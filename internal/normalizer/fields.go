package normalizer

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/seeuferweg-catalog/internal/domain"
)

const unknownName = "Unbekannt"

// poiNamespace - пространство имён UUIDv5 для синтезированных идентификаторов
var poiNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://seeuferweg-walensee.ch/poi"))

func resolve(text domain.LocalizedText) string {
	return strings.TrimSpace(text.Resolve(domain.DefaultLanguages...))
}

// firstText возвращает первое непустое разрешённое значение
func firstText(texts ...domain.LocalizedText) string {
	for _, t := range texts {
		if v := resolve(t); v != "" {
			return v
		}
	}
	return ""
}

func firstString(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// priceNumber - число с необязательными разделителями тысяч (1'200, 1’200) и дробной частью
var priceNumber = regexp.MustCompile(`\d+(?:['’]\d{3})*(?:[.,]\d+)?`)

// ParsePriceCHF извлекает первое число из текста цены ("ab CHF 1'200.50" → 1200.5).
// Текст без цифр ("$$", "auf Anfrage") даёт nil
func ParsePriceCHF(text string) *float64 {
	match := priceNumber.FindString(text)
	if match == "" {
		return nil
	}
	match = strings.NewReplacer("'", "", "’", "", ",", ".").Replace(match)
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &v
}

func nameOrUnknown(text domain.LocalizedText) string {
	if name := resolve(text); name != "" {
		return name
	}
	return unknownName
}

// collectImages объединяет image и photo, оставляя только абсолютные http(s) URL
func collectImages(lists ...domain.ImageList) []string {
	images := make([]string, 0)
	for _, list := range lists {
		for _, raw := range list {
			if isAbsoluteURL(raw) {
				images = append(images, raw)
			}
		}
	}
	return images
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// StableID - детерминированный идентификатор для записей без собственного id
func StableID(source domain.Source, name string, lat, lon *float64) string {
	key := strings.Join([]string{string(source), name, formatCoord(lat), formatCoord(lon)}, "|")
	return uuid.NewSHA1(poiNamespace, []byte(key)).String()
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func address(a *domain.RawAddress) domain.RawAddress {
	if a == nil {
		return domain.RawAddress{}
	}
	return *a
}
