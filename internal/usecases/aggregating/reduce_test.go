package aggregating

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestAggregateByPlatform(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	t.Run("soma métricas e deriva taxas de uma plataforma", func(t *testing.T) {
		records := []*domain.PerformanceRecord{
			{
				Platform:         "facebook",
				OccurredAt:       day,
				Views:            100,
				Likes:            10,
				Comments:         5,
				Shares:           5,
				Clicks:           25,
				RevenueGenerated: 50,
				AdSpend:          10,
				ROIPercentage:    floatPtr(400),
			},
		}

		metrics := AggregateByPlatform(records)
		require.Len(t, metrics, 1)

		fb := metrics[0]
		assert.Equal(t, "facebook", fb.Platform)
		assert.Equal(t, 100, fb.Impressions)
		assert.Equal(t, 20, fb.Engagement)
		assert.Equal(t, 25, fb.Clicks)
		assert.Equal(t, 50.0, fb.Revenue)
		assert.Equal(t, 10.0, fb.Spend)
		assert.Equal(t, 40.0, fb.Profit)
		assert.Equal(t, 20.0, fb.EngagementRate)
		assert.Equal(t, 25.0, fb.ClickThroughRate)
		assert.Equal(t, 400.0, fb.AvgROI)
		// (20/100) * 400
		assert.Equal(t, 80.0, fb.EfficiencyScore)
	})

	t.Run("agrupa por plataforma normalizada e ordena por nome", func(t *testing.T) {
		records := []*domain.PerformanceRecord{
			{Platform: "TikTok", OccurredAt: day, Views: 10},
			{Platform: " facebook ", OccurredAt: day, Views: 5},
			{Platform: "tiktok", OccurredAt: day, Views: 20},
		}

		metrics := AggregateByPlatform(records)
		require.Len(t, metrics, 2)

		assert.Equal(t, "facebook", metrics[0].Platform)
		assert.Equal(t, 5, metrics[0].Impressions)
		assert.Equal(t, "tiktok", metrics[1].Platform)
		assert.Equal(t, 30, metrics[1].Impressions)
	})

	t.Run("registros sem ROI reportado ficam fora da média", func(t *testing.T) {
		records := []*domain.PerformanceRecord{
			{Platform: "instagram", OccurredAt: day, ROIPercentage: floatPtr(100)},
			{Platform: "instagram", OccurredAt: day, ROIPercentage: nil},
			{Platform: "instagram", OccurredAt: day, ROIPercentage: floatPtr(200)},
		}

		metrics := AggregateByPlatform(records)
		require.Len(t, metrics, 1)

		// Média de {100, 200}; o nulo não vira zero
		assert.Equal(t, 150.0, metrics[0].AvgROI)
	})

	t.Run("divisão por zero vira zero nas taxas derivadas", func(t *testing.T) {
		records := []*domain.PerformanceRecord{
			{Platform: "youtube", OccurredAt: day, Views: 0, Likes: 3, Clicks: 2},
		}

		metrics := AggregateByPlatform(records)
		require.Len(t, metrics, 1)

		assert.Equal(t, 0.0, metrics[0].EngagementRate)
		assert.Equal(t, 0.0, metrics[0].ClickThroughRate)
		assert.Equal(t, 0.0, metrics[0].EfficiencyScore)
		assert.False(t, math.IsNaN(metrics[0].EngagementRate))
	})

	t.Run("plataforma vazia é descartada", func(t *testing.T) {
		records := []*domain.PerformanceRecord{
			{Platform: "   ", OccurredAt: day, Views: 10},
			{Platform: "", OccurredAt: day, Views: 10},
		}

		assert.Empty(t, AggregateByPlatform(records))
	})

	t.Run("entrada vazia produz saída vazia", func(t *testing.T) {
		assert.Empty(t, AggregateByPlatform(nil))
		assert.Empty(t, AggregateByPlatform([]*domain.PerformanceRecord{}))
	})
}

func TestAggregateByPlatform_ConservesTotals(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	records := []*domain.PerformanceRecord{
		{Platform: "facebook", OccurredAt: day, Views: 100, Likes: 8, Clicks: 10},
		{Platform: "instagram", OccurredAt: day, Views: 250, Comments: 4, Clicks: 30},
		{Platform: "facebook", OccurredAt: day.AddDate(0, 0, 1), Views: 50, Shares: 2, Clicks: 5},
	}

	metrics := AggregateByPlatform(records)

	totalImpressions := 0
	totalEngagement := 0
	totalClicks := 0
	for _, m := range metrics {
		totalImpressions += m.Impressions
		totalEngagement += m.Engagement
		totalClicks += m.Clicks
	}

	// A soma das plataformas é igual ao total dos registros de entrada
	assert.Equal(t, 400, totalImpressions)
	assert.Equal(t, 14, totalEngagement)
	assert.Equal(t, 45, totalClicks)
}

func TestAggregateROIByDay(t *testing.T) {
	day1 := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	day2 := time.Date(2025, 6, 11, 20, 0, 0, 0, time.Local)

	records := []*domain.PerformanceRecord{
		{Platform: "facebook", OccurredAt: day1, ROIPercentage: floatPtr(100)},
		{Platform: "instagram", OccurredAt: day1, ROIPercentage: floatPtr(300)},
		{Platform: "facebook", OccurredAt: day2, ROIPercentage: nil},
	}

	points := AggregateROIByDay(records)
	require.Len(t, points, 2)

	// Média do dia, ordenado por data
	assert.Equal(t, "2025-06-10", points[0].Date)
	assert.Equal(t, 200.0, points[0].AvgROI)

	// Dia com registros mas sem ROI reportado aparece com média zero
	assert.Equal(t, "2025-06-11", points[1].Date)
	assert.Equal(t, 0.0, points[1].AvgROI)
}

func TestAggregateRevenueByDay(t *testing.T) {
	day1 := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	day2 := time.Date(2025, 6, 11, 20, 0, 0, 0, time.Local)

	records := []*domain.PerformanceRecord{
		{Platform: "facebook", OccurredAt: day1, RevenueGenerated: 120.50},
		{Platform: "instagram", OccurredAt: day1, RevenueGenerated: 79.50},
		{Platform: "facebook", OccurredAt: day2, RevenueGenerated: 10},
	}

	points := AggregateRevenueByDay(records)
	require.Len(t, points, 2)

	// Receita é SOMA por dia, diferente da tendência de ROI que tira média
	assert.Equal(t, "2025-06-10", points[0].Date)
	assert.Equal(t, 200.0, points[0].Revenue)
	assert.Equal(t, "2025-06-11", points[1].Date)
	assert.Equal(t, 10.0, points[1].Revenue)
}

func TestBuildSummary(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	filters := &domain.InsightFilters{
		RangeToken: "7d",
		Window: domain.RangeWindow{
			Start: day.AddDate(0, 0, -7),
			End:   day,
		},
	}

	t.Run("consolida totais e calcula o ROI implícito", func(t *testing.T) {
		records := []*domain.PerformanceRecord{
			{Platform: "facebook", OccurredAt: day, Views: 100, Likes: 10, RevenueGenerated: 150, AdSpend: 50, Clicks: 20},
			{Platform: "instagram", OccurredAt: day, Views: 200, Comments: 5, RevenueGenerated: 50, AdSpend: 50, Clicks: 10},
		}

		summary := BuildSummary(filters, records)

		assert.Equal(t, "7d", summary.Range)
		assert.Equal(t, 300, summary.TotalImpressions)
		assert.Equal(t, 15, summary.TotalEngagement)
		assert.Equal(t, 30, summary.TotalClicks)
		assert.Equal(t, 200.0, summary.TotalRevenue)
		assert.Equal(t, 100.0, summary.TotalSpend)
		assert.Equal(t, 100.0, summary.TotalProfit)
		// (200 - 100) / 100 * 100
		assert.Equal(t, 100.0, summary.ImpliedROI)
		assert.Equal(t, 2, summary.RecordCount)
		assert.Equal(t, 2, summary.PlatformCount)
	})

	t.Run("gasto zero resulta em ROI implícito zero", func(t *testing.T) {
		records := []*domain.PerformanceRecord{
			{Platform: "facebook", OccurredAt: day, RevenueGenerated: 100, AdSpend: 0},
		}

		summary := BuildSummary(filters, records)

		assert.Equal(t, 0.0, summary.ImpliedROI)
	})

	t.Run("janela sem registros produz resumo zerado", func(t *testing.T) {
		summary := BuildSummary(filters, nil)

		assert.Equal(t, 0, summary.RecordCount)
		assert.Equal(t, 0, summary.PlatformCount)
		assert.Equal(t, 0.0, summary.TotalRevenue)
		assert.Equal(t, 0.0, summary.ImpliedROI)
	})
}

func TestMeanVersusImpliedROI(t *testing.T) {
	// As duas fórmulas divergem de propósito: média das razões contra razão
	// das somas.
	assert.Equal(t, 150.0, domain.MeanReportedROI([]float64{100, 200}))
	assert.Equal(t, 100.0, domain.ImpliedROI(200, 100))
	assert.NotEqual(t,
		domain.MeanReportedROI([]float64{100, 200}),
		domain.ImpliedROI(200, 100),
	)
}
