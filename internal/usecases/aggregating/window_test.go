package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
)

func TestResolveWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 45, 0, time.Local)
	midnight := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name          string
		rangeToken    string
		expectedDays  int
		expectedStart time.Time
	}{
		{
			name:          "janela de 7 dias",
			rangeToken:    "7d",
			expectedDays:  7,
			expectedStart: midnight.AddDate(0, 0, -7),
		},
		{
			name:          "janela de 14 dias",
			rangeToken:    "14d",
			expectedDays:  14,
			expectedStart: midnight.AddDate(0, 0, -14),
		},
		{
			name:          "janela de 30 dias",
			rangeToken:    "30d",
			expectedDays:  30,
			expectedStart: midnight.AddDate(0, 0, -30),
		},
		{
			name:          "janela de 90 dias",
			rangeToken:    "90d",
			expectedDays:  90,
			expectedStart: midnight.AddDate(0, 0, -90),
		},
		{
			name:          "janela de 1 ano fixada em 365 dias",
			rangeToken:    "1y",
			expectedDays:  365,
			expectedStart: midnight.AddDate(0, 0, -365),
		},
		{
			name:          "token desconhecido cai no default de 7 dias",
			rangeToken:    "60d",
			expectedDays:  7,
			expectedStart: midnight.AddDate(0, 0, -7),
		},
		{
			name:          "token vazio cai no default de 7 dias",
			rangeToken:    "",
			expectedDays:  7,
			expectedStart: midnight.AddDate(0, 0, -7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := ResolveWindow(tt.rangeToken, now)

			assert.Equal(t, tt.expectedStart, window.Start)
			assert.Equal(t, midnight, window.End)
			assert.True(t, window.Start.Before(window.End), "start deve ser anterior a end")
			assert.Equal(t, tt.expectedDays, window.Days())
		})
	}
}

func TestResolveWindow_EndIsMidnightOfToday(t *testing.T) {
	// Independente da hora do dia, end é sempre a meia-noite local de hoje
	for _, hour := range []int{0, 1, 12, 23} {
		now := time.Date(2025, 3, 10, hour, 59, 59, 0, time.Local)
		window := ResolveWindow("7d", now)

		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), window.End)
	}
}

func TestNormalizeRangeToken(t *testing.T) {
	assert.Equal(t, "30d", NormalizeRangeToken("30d"))
	assert.Equal(t, "1y", NormalizeRangeToken("1y"))
	assert.Equal(t, DefaultRangeToken, NormalizeRangeToken("banana"))
	assert.Equal(t, DefaultRangeToken, NormalizeRangeToken(""))
}

func TestFilterByWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)
	window := ResolveWindow("7d", now)

	record := func(ts time.Time) *domain.PerformanceRecord {
		return &domain.PerformanceRecord{Platform: "facebook", OccurredAt: ts}
	}

	inWindow := record(window.Start.Add(12 * time.Hour))
	atStart := record(window.Start)
	beforeStart := record(window.Start.Add(-time.Second))
	atEnd := record(window.End)
	today := record(time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local))
	unparsable := record(time.Time{})

	records := []*domain.PerformanceRecord{
		beforeStart, atStart, inWindow, unparsable, atEnd, today, nil,
	}

	filtered := FilterByWindow(records, window)

	// Semiaberto: inclui start, exclui end; hoje e timestamps zero ficam fora
	assert.Equal(t, []*domain.PerformanceRecord{atStart, inWindow}, filtered)

	// Ordem de entrada preservada e entrada não mutada
	assert.Len(t, records, 7)
	assert.Same(t, beforeStart, records[0])
}

func TestFilterByWindow_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)
	window := ResolveWindow("14d", now)

	records := []*domain.PerformanceRecord{
		{Platform: "instagram", OccurredAt: window.Start.AddDate(0, 0, 1)},
		{Platform: "tiktok", OccurredAt: window.Start.AddDate(0, 0, 20)},
		{Platform: "youtube", OccurredAt: window.Start.AddDate(0, 0, 3)},
	}

	once := FilterByWindow(records, window)
	twice := FilterByWindow(once, window)

	assert.Equal(t, once, twice)
}

func TestFilterByWindow_EmptyInput(t *testing.T) {
	window := ResolveWindow("7d", time.Now())

	assert.Empty(t, FilterByWindow(nil, window))
	assert.Empty(t, FilterByWindow([]*domain.PerformanceRecord{}, window))
}
