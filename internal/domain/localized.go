package domain

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// DefaultLanguages - предпочтительный порядок языков при разрешении текста
var DefaultLanguages = []string{"de", "en"}

// LocalizedText - текст, заданный строкой или объектом язык→строка.
// Значения другой формы (массивы, числа) считаются пустыми
type LocalizedText struct {
	plain  string
	values map[string]string
}

// NewLocalizedText создаёт многоязычный текст
func NewLocalizedText(values map[string]string) LocalizedText {
	return LocalizedText{values: values}
}

// PlainText создаёт текст без языковых вариантов
func PlainText(s string) LocalizedText {
	return LocalizedText{plain: s}
}

// UnmarshalJSON принимает строку, объект или null
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	*t = LocalizedText{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		return json.Unmarshal(data, &t.plain)
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		t.values = make(map[string]string, len(raw))
		for lang, v := range raw {
			var s string
			if json.Unmarshal(v, &s) == nil {
				t.values[lang] = s
			}
		}
	}
	return nil
}

// MarshalJSON сериализует текст в исходной форме
func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if t.values != nil {
		return json.Marshal(t.values)
	}
	return json.Marshal(t.plain)
}

// Resolve выбирает значение: сначала языки из preferred по порядку,
// затем остальные языки в алфавитном порядке. Пустые значения пропускаются
func (t LocalizedText) Resolve(preferred ...string) string {
	if t.values == nil {
		return t.plain
	}
	for _, lang := range preferred {
		if v := t.values[lang]; v != "" {
			return v
		}
	}
	langs := make([]string, 0, len(t.values))
	for lang := range t.values {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if v := t.values[lang]; v != "" {
			return v
		}
	}
	return ""
}

// ImageList - список URL изображений из строки, объекта или массива
type ImageList []string

// UnmarshalJSON извлекает URL из contentUrl или url, неподходящие элементы пропускаются
func (l *ImageList) UnmarshalJSON(data []byte) error {
	*l = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, item := range items {
			if u := imageURL(item); u != "" {
				*l = append(*l, u)
			}
		}
		return nil
	}
	if u := imageURL(data); u != "" {
		*l = ImageList{u}
	}
	return nil
}

func imageURL(data json.RawMessage) string {
	var s string
	if json.Unmarshal(data, &s) == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		ContentURL string `json:"contentUrl"`
		URL        string `json:"url"`
	}
	if json.Unmarshal(data, &obj) != nil {
		return ""
	}
	if obj.ContentURL != "" {
		return strings.TrimSpace(obj.ContentURL)
	}
	return strings.TrimSpace(obj.URL)
}

// FlexFloat - число, переданное числом или строкой
type FlexFloat struct {
	Value float64
	Valid bool
}

// UnmarshalJSON принимает число, числовую строку или null.
// Нечисловая строка, bool, массив или объект дают Valid=false
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch {
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			f.Value, f.Valid = v, true
		}
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		f.Value, f.Valid = v, true
	}
	return nil
}
