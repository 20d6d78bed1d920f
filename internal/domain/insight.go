package domain

import (
	"time"

	"github.com/vfg2006/roi-analytics-api/pkg/utils"
)

// InsightFilters carrega o token de range solicitado e a janela concreta
// resolvida a partir dele.
type InsightFilters struct {
	RangeToken string
	Window     RangeWindow
}

// InsightSummary consolida os totais da janela para a visão de tabela do
// dashboard. Aqui o ROI é o ImpliedROI (razão das somas), diferente do
// avg_roi dos cards por plataforma (média das razões). As duas fórmulas
// coexistem de propósito: cada uma alimenta uma visão distinta do produto.
type InsightSummary struct {
	Range            string  `json:"range"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	TotalImpressions int     `json:"total_impressions"`
	TotalEngagement  int     `json:"total_engagement"`
	TotalClicks      int     `json:"total_clicks"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalSpend       float64 `json:"total_spend"`
	TotalProfit      float64 `json:"total_profit"`
	ImpliedROI       float64 `json:"implied_roi"`
	RecordCount      int     `json:"record_count"`
	PlatformCount    int     `json:"platform_count"`
}

// PlatformInsightsResponse é a resposta dos cards por plataforma.
type PlatformInsightsResponse struct {
	Range     string             `json:"range"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Platforms []*PlatformMetrics `json:"platforms"`
}

// ROITrendResponse é a resposta da linha de tendência de ROI diário.
type ROITrendResponse struct {
	Range     string           `json:"range"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Points    []*DailyROIPoint `json:"points"`
}

// RevenueTrendResponse é a resposta da linha de tendência de receita diária.
type RevenueTrendResponse struct {
	Range     string               `json:"range"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Points    []*DailyRevenuePoint `json:"points"`
}

// DashboardSnapshot é o conjunto completo de agregações servido ao dashboard,
// carimbado com a sequência da atualização que o produziu.
type DashboardSnapshot struct {
	Range        string               `json:"range"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	Platforms    []*PlatformMetrics   `json:"platforms"`
	ROITrend     []*DailyROIPoint     `json:"roi_trend"`
	RevenueTrend []*DailyRevenuePoint `json:"revenue_trend"`
	Summary      *InsightSummary      `json:"summary"`
	Sequence     uint64               `json:"sequence"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

// MeanReportedROI calcula a média dos roi_percentage reportados por registro.
// Retorna 0 quando a lista está vazia. Não confundir com ImpliedROI: esta é a
// média das razões, usada nos cards por plataforma.
func MeanReportedROI(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// ImpliedROI calcula (receita - gasto) / gasto * 100 a partir dos totais da
// janela. Retorna 0 quando o gasto é zero. Usada na visão de tabela/resumo.
func ImpliedROI(revenue, spend float64) float64 {
	if spend == 0 {
		return 0
	}

	return utils.RoundWithTwoDecimalPlace((revenue - spend) / spend * 100)
}
