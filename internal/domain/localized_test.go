package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedText_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain string", input: `"Seeblick"`, expected: "Seeblick"},
		{name: "german preferred", input: `{"en":"Lake view","de":"Seeblick"}`, expected: "Seeblick"},
		{name: "english fallback", input: `{"en":"Lake view","fr":"Vue"}`, expected: "Lake view"},
		{name: "first remaining language", input: `{"it":"Vista","fr":"Vue"}`, expected: "Vue"},
		{name: "empty german skipped", input: `{"de":"","en":"Lake view"}`, expected: "Lake view"},
		{name: "null", input: `null`, expected: ""},
		{name: "array is ignored", input: `[{"dayOfWeek":"Monday"}]`, expected: ""},
		{name: "non-string values ignored", input: `{"de":42,"en":"Lake view"}`, expected: "Lake view"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var text LocalizedText
			require.NoError(t, json.Unmarshal([]byte(tt.input), &text))
			assert.Equal(t, tt.expected, text.Resolve(DefaultLanguages...))
		})
	}
}

func TestImageList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ImageList
	}{
		{name: "single string", input: `"https://img/a.jpg"`, expected: ImageList{"https://img/a.jpg"}},
		{name: "single object", input: `{"contentUrl":"https://img/a.jpg"}`, expected: ImageList{"https://img/a.jpg"}},
		{name: "url field", input: `{"url":"https://img/b.jpg"}`, expected: ImageList{"https://img/b.jpg"}},
		{
			name:     "mixed array",
			input:    `["https://img/a.jpg",{"contentUrl":"https://img/b.jpg"},{"caption":"x"},7]`,
			expected: ImageList{"https://img/a.jpg", "https://img/b.jpg"},
		},
		{name: "null", input: `null`, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list ImageList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &list))
			assert.Equal(t, tt.expected, list)
		})
	}
}

func TestFlexFloat_UnmarshalJSON(t *testing.T) {
	var geo RawGeo
	require.NoError(t, json.Unmarshal([]byte(`{"latitude":"47.05","longitude":9.1}`), &geo))
	assert.True(t, geo.Latitude.Valid)
	assert.Equal(t, 47.05, geo.Latitude.Value)
	assert.True(t, geo.Longitude.Valid)
	assert.Equal(t, 9.1, geo.Longitude.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"latitude":"n/a","longitude":null}`), &geo))
	assert.False(t, geo.Latitude.Valid)
	assert.False(t, geo.Longitude.Valid)
}

func TestBoundingBox_Contains(t *testing.T) {
	assert.True(t, WalenseeRegion.Contains(47.05, 9.10))
	assert.True(t, WalenseeRegion.Contains(46.9, 8.95))
	assert.False(t, WalenseeRegion.Contains(50.0, 9.10))
	assert.False(t, WalenseeRegion.Contains(47.05, 9.30))
}

func TestPOI_ModifiedAt(t *testing.T) {
	ts, ok := POI{DateModified: "2024-05-01T10:00:00Z"}.ModifiedAt()
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())

	_, ok = POI{DateModified: "gestern"}.ModifiedAt()
	assert.False(t, ok)
}
