package aggregating

import (
	"github.com/vfg2006/roi-analytics-api/internal/domain"
)

// Insighter define a interface de consulta de métricas agregadas usada pelos
// handlers do dashboard.
type Insighter interface {
	// GetPlatformInsights agrega os registros da janela por plataforma.
	GetPlatformInsights(rangeToken string) (*domain.PlatformInsightsResponse, error)

	// GetROITrend retorna a média diária dos roi_percentage reportados.
	GetROITrend(rangeToken string) (*domain.ROITrendResponse, error)

	// GetRevenueTrend retorna a soma diária de receita.
	GetRevenueTrend(rangeToken string) (*domain.RevenueTrendResponse, error)

	// GetSummary retorna os totais da janela com o ROI implícito.
	GetSummary(rangeToken string) (*domain.InsightSummary, error)

	// GetDashboard retorna o último snapshot comprometido para o range, ou
	// calcula um novo quando ainda não existe.
	GetDashboard(rangeToken string) (*domain.DashboardSnapshot, error)

	// RefreshDashboard recalcula o snapshot com carimbo de sequência; apenas
	// o resultado da atualização mais recente é comprometido.
	RefreshDashboard(rangeToken string) (*domain.DashboardSnapshot, error)
}
