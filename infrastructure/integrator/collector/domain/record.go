package collectordomain

import (
	"time"
)

// PerformanceRow é a linha crua retornada pela API do collector. Os campos
// numéricos chegam como ponteiros porque o payload de origem omite ou anula
// campos com frequência; a coerção para zero acontece na conversão.
type PerformanceRow struct {
	Platform         string   `json:"platform"`
	Timestamp        string   `json:"timestamp"`
	Views            *float64 `json:"views"`
	Likes            *float64 `json:"likes"`
	Comments         *float64 `json:"comments"`
	Shares           *float64 `json:"shares"`
	Clicks           *float64 `json:"clicks"`
	RevenueGenerated *float64 `json:"revenue_generated"`
	AdSpend          *float64 `json:"ad_spend"`
	CostPerClick     *float64 `json:"cost_per_click"`
	ROIPercentage    *float64 `json:"roi_percentage"`
}

// RecordsEnvelope cobre as duas variantes de envelope que o collector devolve
// em produção: {"all_data": [...]} e {"rows": [...]}. O acesso é feito apenas
// por Records(), para que a inconsistência não vaze para os consumidores.
type RecordsEnvelope struct {
	AllData []PerformanceRow `json:"all_data"`
	Rows    []PerformanceRow `json:"rows"`
}

// Records devolve a lista presente no envelope, qualquer que seja a variante.
func (e *RecordsEnvelope) Records() []PerformanceRow {
	if e.AllData != nil {
		return e.AllData
	}
	return e.Rows
}

// timestampLayouts são os formatos aceitos para o campo timestamp, na ordem
// em que aparecem nos payloads reais.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseTimestamp converte o timestamp cru. Valores não reconhecidos resultam
// em time.Time zero; o filtro de janela descarta esses registros em silêncio.
func ParseTimestamp(raw string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
