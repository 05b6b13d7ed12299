package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected FlexString
	}{
		{name: "string", input: `"+41 55 000"`, expected: "+41 55 000"},
		{name: "integer", input: `41551234567`, expected: "41551234567"},
		{name: "negative float", input: `-1.5`, expected: "-1.5"},
		{name: "null", input: `null`, expected: ""},
		{name: "bool", input: `false`, expected: ""},
		{name: "array", input: `["a","b"]`, expected: ""},
		{name: "object", input: `{"de":"x"}`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s FlexString
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestSchemaType_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected SchemaType
	}{
		{name: "string", input: `"Restaurant"`, expected: "Restaurant"},
		{name: "array takes first string", input: `["Restaurant","Place"]`, expected: "Restaurant"},
		{name: "array skips non-strings", input: `[null,7,"","Hotel"]`, expected: "Hotel"},
		{name: "empty array", input: `[]`, expected: ""},
		{name: "object", input: `{"@id":"x"}`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st SchemaType
			require.NoError(t, json.Unmarshal([]byte(tt.input), &st))
			assert.Equal(t, tt.expected, st)
		})
	}
}

func TestRawAddress_NonObject(t *testing.T) {
	for _, input := range []string{`"Weesen"`, `["Weesen"]`, `42`} {
		var rec struct {
			Address *RawAddress `json:"address"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"address":`+input+`}`), &rec), input)
		require.NotNil(t, rec.Address)
		assert.Equal(t, RawAddress{}, *rec.Address, input)
	}

	var addr RawAddress
	require.NoError(t, json.Unmarshal([]byte(`{"addressLocality":"Weesen","postalCode":8872}`), &addr))
	assert.Equal(t, FlexString("Weesen"), addr.AddressLocality)
	assert.Equal(t, FlexString("8872"), addr.PostalCode)
}

func TestRawOffer_Array(t *testing.T) {
	var offer RawOffer
	require.NoError(t, json.Unmarshal([]byte(`["x",{"url":"https://a.ch","description":"ab CHF 10"},{"url":"https://b.ch"}]`), &offer))
	assert.Equal(t, FlexString("https://a.ch"), offer.URL)
	assert.Equal(t, "ab CHF 10", offer.Description.Resolve(DefaultLanguages...))
}

func TestFlexFloat_WrongShapes(t *testing.T) {
	for _, input := range []string{`true`, `[47.1]`, `{"v":47.1}`, `"abc"`, `null`} {
		var f FlexFloat
		require.NoError(t, json.Unmarshal([]byte(input), &f), input)
		assert.False(t, f.Valid, input)
	}
}
