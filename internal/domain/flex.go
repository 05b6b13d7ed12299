package domain

import (
	"bytes"
	"encoding/json"
)

// FlexString - скалярное поле фида: строка или число (число хранится в исходной записи).
// Массивы, объекты, bool и null дают пустую строку
type FlexString string

// UnmarshalJSON никогда не отклоняет корректный JSON
func (s *FlexString) UnmarshalJSON(data []byte) error {
	*s = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch {
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = FlexString(n.String())
	}
	return nil
}

// String возвращает значение как string
func (s FlexString) String() string {
	return string(s)
}

// SchemaType - schema.org тип: строка или массив типов. Из массива берётся первая непустая строка
type SchemaType string

// UnmarshalJSON принимает строку, массив или любое другое значение (пустой тип)
func (t *SchemaType) UnmarshalJSON(data []byte) error {
	*t = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] != '[' {
		var s FlexString
		if err := s.UnmarshalJSON(data); err != nil {
			return err
		}
		*t = SchemaType(s)
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil && s != "" {
			*t = SchemaType(s)
			return nil
		}
	}
	return nil
}

// String возвращает значение как string
func (t SchemaType) String() string {
	return string(t)
}

// isObject - data является JSON-объектом
func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

// UnmarshalJSON читает координаты только из объекта, иначе координаты невалидны
func (g *RawGeo) UnmarshalJSON(data []byte) error {
	*g = RawGeo{}
	if !isObject(data) {
		return nil
	}
	type plain RawGeo
	return json.Unmarshal(data, (*plain)(g))
}

// UnmarshalJSON читает адрес только из объекта. Строка или массив дают пустой адрес
func (a *RawAddress) UnmarshalJSON(data []byte) error {
	*a = RawAddress{}
	if !isObject(data) {
		return nil
	}
	type plain RawAddress
	return json.Unmarshal(data, (*plain)(a))
}

// UnmarshalJSON принимает объект или массив предложений (берётся первый объект)
func (o *RawOffer) UnmarshalJSON(data []byte) error {
	*o = RawOffer{}
	data = bytes.TrimSpace(data)
	type plain RawOffer
	if isObject(data) {
		return json.Unmarshal(data, (*plain)(o))
	}
	if len(data) == 0 || data[0] != '[' {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	for _, item := range items {
		if isObject(item) {
			return json.Unmarshal(item, (*plain)(o))
		}
	}
	return nil
}
