package aggregating

import (
	"sort"
	"time"

	"github.com/vfg2006/roi-analytics-api/internal/domain"
	"github.com/vfg2006/roi-analytics-api/pkg/utils"
)

// platformAccumulator acumula os totais de uma plataforma durante o fold.
type platformAccumulator struct {
	impressions int
	engagement  int
	clicks      int
	revenue     float64
	spend       float64
	roiValues   []float64
}

// AggregateByPlatform dobra os registros filtrados em métricas por
// plataforma. A chave de agrupamento é o identificador normalizado; os campos
// derivados são calculados somente depois de todas as linhas somadas, com
// guarda de divisão por zero. Entrada vazia produz saída vazia.
func AggregateByPlatform(records []*domain.PerformanceRecord) []*domain.PlatformMetrics {
	accumulators := make(map[string]*platformAccumulator)

	for _, record := range records {
		platform := record.NormalizedPlatform()
		if platform == "" {
			continue
		}

		acc, exists := accumulators[platform]
		if !exists {
			acc = &platformAccumulator{}
			accumulators[platform] = acc
		}

		acc.impressions += record.Views
		acc.engagement += record.Engagement()
		acc.clicks += record.Clicks
		acc.revenue += domain.SafeFloat(record.RevenueGenerated)
		acc.spend += domain.SafeFloat(record.AdSpend)

		// Apenas valores reportados e finitos entram na média; null não é
		// substituído por zero.
		if record.HasReportedROI() {
			acc.roiValues = append(acc.roiValues, *record.ROIPercentage)
		}
	}

	metrics := make([]*domain.PlatformMetrics, 0, len(accumulators))
	for platform, acc := range accumulators {
		metrics = append(metrics, buildPlatformMetrics(platform, acc))
	}

	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Platform < metrics[j].Platform
	})

	return metrics
}

// buildPlatformMetrics calcula os campos derivados de uma plataforma.
func buildPlatformMetrics(platform string, acc *platformAccumulator) *domain.PlatformMetrics {
	engagementRate := 0.0
	clickThroughRate := 0.0

	if acc.impressions > 0 {
		engagementRate = float64(acc.engagement) / float64(acc.impressions) * 100
		clickThroughRate = float64(acc.clicks) / float64(acc.impressions) * 100
	}

	// Média das razões reportadas, não razão das somas (ver ImpliedROI).
	avgROI := domain.MeanReportedROI(acc.roiValues)

	// Score composto definido pelo produto: fração de engajamento vezes o
	// ROI médio. A fórmula é preservada como está, não "corrigida".
	efficiencyScore := (engagementRate / 100) * avgROI

	return &domain.PlatformMetrics{
		Platform:         platform,
		Impressions:      acc.impressions,
		Engagement:       acc.engagement,
		Revenue:          utils.RoundWithTwoDecimalPlace(acc.revenue),
		Spend:            utils.RoundWithTwoDecimalPlace(acc.spend),
		Clicks:           acc.clicks,
		Profit:           utils.RoundWithTwoDecimalPlace(acc.revenue - acc.spend),
		AvgROI:           utils.RoundWithTwoDecimalPlace(avgROI),
		EngagementRate:   utils.RoundWithTwoDecimalPlace(engagementRate),
		ClickThroughRate: utils.RoundWithTwoDecimalPlace(clickThroughRate),
		EfficiencyScore:  utils.RoundWithTwoDecimalPlace(efficiencyScore),
	}
}

// AggregateROIByDay agrupa pela porção de data do timestamp e calcula a
// MÉDIA dos roi_percentage reportados no dia. Dias com registros mas sem ROI
// reportado aparecem com média zero.
func AggregateROIByDay(records []*domain.PerformanceRecord) []*domain.DailyROIPoint {
	roiByDay := make(map[string][]float64)
	daysSeen := make(map[string]bool)

	for _, record := range records {
		day := record.OccurredAt.Format(time.DateOnly)
		daysSeen[day] = true

		if record.HasReportedROI() {
			roiByDay[day] = append(roiByDay[day], *record.ROIPercentage)
		}
	}

	points := make([]*domain.DailyROIPoint, 0, len(daysSeen))
	for day := range daysSeen {
		points = append(points, &domain.DailyROIPoint{
			Date:   day,
			AvgROI: utils.RoundWithTwoDecimalPlace(domain.MeanReportedROI(roiByDay[day])),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}

// AggregateRevenueByDay agrupa pela porção de data do timestamp e SOMA a
// receita do dia. A tendência de receita soma enquanto a de ROI tira média;
// a diferença é intencional e alimenta gráficos distintos.
func AggregateRevenueByDay(records []*domain.PerformanceRecord) []*domain.DailyRevenuePoint {
	revenueByDay := make(map[string]float64)

	for _, record := range records {
		day := record.OccurredAt.Format(time.DateOnly)
		revenueByDay[day] += domain.SafeFloat(record.RevenueGenerated)
	}

	points := make([]*domain.DailyRevenuePoint, 0, len(revenueByDay))
	for day, revenue := range revenueByDay {
		points = append(points, &domain.DailyRevenuePoint{
			Date:    day,
			Revenue: utils.RoundWithTwoDecimalPlace(revenue),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}

// BuildSummary consolida os totais da janela para a visão de tabela. Aqui o
// ROI é calculado a partir das somas (ImpliedROI), a segunda fórmula de ROI
// do produto.
func BuildSummary(filters *domain.InsightFilters, records []*domain.PerformanceRecord) *domain.InsightSummary {
	summary := &domain.InsightSummary{
		Range:     filters.RangeToken,
		StartDate: filters.Window.Start.Format(time.DateOnly),
		EndDate:   filters.Window.End.Format(time.DateOnly),
	}

	platforms := make(map[string]bool)

	for _, record := range records {
		summary.TotalImpressions += record.Views
		summary.TotalEngagement += record.Engagement()
		summary.TotalClicks += record.Clicks
		summary.TotalRevenue += domain.SafeFloat(record.RevenueGenerated)
		summary.TotalSpend += domain.SafeFloat(record.AdSpend)

		if platform := record.NormalizedPlatform(); platform != "" {
			platforms[platform] = true
		}
	}

	summary.RecordCount = len(records)
	summary.PlatformCount = len(platforms)
	summary.TotalRevenue = utils.RoundWithTwoDecimalPlace(summary.TotalRevenue)
	summary.TotalSpend = utils.RoundWithTwoDecimalPlace(summary.TotalSpend)
	summary.TotalProfit = utils.RoundWithTwoDecimalPlace(summary.TotalRevenue - summary.TotalSpend)
	summary.ImpliedROI = domain.ImpliedROI(summary.TotalRevenue, summary.TotalSpend)

	return summary
}
