package collectordomain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsEnvelope_Records(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected int
	}{
		{
			name:     "variante all_data",
			payload:  `{"all_data": [{"platform": "facebook"}, {"platform": "instagram"}]}`,
			expected: 2,
		},
		{
			name:     "variante rows",
			payload:  `{"rows": [{"platform": "tiktok"}]}`,
			expected: 1,
		},
		{
			name:     "all_data tem precedência quando ambas presentes",
			payload:  `{"all_data": [{"platform": "facebook"}], "rows": [{"platform": "a"}, {"platform": "b"}]}`,
			expected: 1,
		},
		{
			name:     "all_data vazio mas presente ainda vence",
			payload:  `{"all_data": [], "rows": [{"platform": "a"}]}`,
			expected: 0,
		},
		{
			name:     "envelope vazio devolve lista nula",
			payload:  `{}`,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var envelope RecordsEnvelope
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &envelope))

			assert.Len(t, envelope.Records(), tt.expected)
		})
	}
}

func TestPerformanceRow_NullFields(t *testing.T) {
	payload := `{
		"platform": "facebook",
		"timestamp": "2025-06-10",
		"views": 100,
		"likes": null,
		"roi_percentage": null
	}`

	var row PerformanceRow
	require.NoError(t, json.Unmarshal([]byte(payload), &row))

	require.NotNil(t, row.Views)
	assert.Equal(t, 100.0, *row.Views)
	assert.Nil(t, row.Likes)
	assert.Nil(t, row.ROIPercentage)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Time
	}{
		{
			name:     "RFC3339",
			raw:      "2025-06-10T08:30:00Z",
			expected: time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "sem fuso",
			raw:      "2025-06-10T08:30:00",
			expected: time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "somente data",
			raw:      "2025-06-10",
			expected: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "formato irreconhecível vira zero",
			raw:      "10/06/2025",
			expected: time.Time{},
		},
		{
			name:     "string vazia vira zero",
			raw:      "",
			expected: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTimestamp(tt.raw))
		})
	}
}
