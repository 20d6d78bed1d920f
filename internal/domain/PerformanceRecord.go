package domain

import (
	"math"
	"strings"
	"time"
)

// PerformanceRecord representa uma linha de desempenho diário de uma
// plataforma, conforme retornada pelo collector e armazenada no banco.
// O backend do collector é o sistema de registro; aqui os dados são
// somente leitura.
type PerformanceRecord struct {
	ID               int64     `json:"id,omitempty"`
	Platform         string    `json:"platform"`
	OccurredAt       time.Time `json:"timestamp"`
	Views            int       `json:"views"`
	Likes            int       `json:"likes"`
	Comments         int       `json:"comments"`
	Shares           int       `json:"shares"`
	Clicks           int       `json:"clicks"`
	RevenueGenerated float64   `json:"revenue_generated"`
	AdSpend          float64   `json:"ad_spend"`
	CostPerClick     float64   `json:"cost_per_click"`
	ROIPercentage    *float64  `json:"roi_percentage,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}

// NormalizedPlatform retorna o identificador da plataforma normalizado para
// uso como chave de agrupamento (os dados de origem são inconsistentes em
// caixa e espaçamento).
func (r *PerformanceRecord) NormalizedPlatform() string {
	return strings.ToLower(strings.TrimSpace(r.Platform))
}

// Engagement retorna a soma de curtidas, comentários e compartilhamentos.
func (r *PerformanceRecord) Engagement() int {
	return r.Likes + r.Comments + r.Shares
}

// Sanitize zera campos numéricos não finitos para que NaN/Inf nunca se
// propaguem para as somas de agregação.
func (r *PerformanceRecord) Sanitize() {
	r.RevenueGenerated = SafeFloat(r.RevenueGenerated)
	r.AdSpend = SafeFloat(r.AdSpend)
	r.CostPerClick = SafeFloat(r.CostPerClick)

	if r.ROIPercentage != nil && !isFinite(*r.ROIPercentage) {
		r.ROIPercentage = nil
	}
}

// HasReportedROI indica se o registro traz um roi_percentage utilizável.
func (r *PerformanceRecord) HasReportedROI() bool {
	return r.ROIPercentage != nil && isFinite(*r.ROIPercentage)
}

// SafeFloat coage valores não finitos para zero.
func SafeFloat(f float64) float64 {
	if !isFinite(f) {
		return 0
	}
	return f
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
