package domain

// PlatformMetrics agrega o desempenho de uma plataforma dentro da janela
// solicitada. Uma instância por plataforma distinta observada no conjunto
// filtrado; criada a cada agregação e descartada após a renderização.
type PlatformMetrics struct {
	Platform         string  `json:"platform"`
	Impressions      int     `json:"impressions"`
	Engagement       int     `json:"engagement"`
	Revenue          float64 `json:"revenue"`
	Spend            float64 `json:"spend"`
	Clicks           int     `json:"clicks"`
	Profit           float64 `json:"profit"`
	AvgROI           float64 `json:"avg_roi"`
	EngagementRate   float64 `json:"engagement_rate"`
	ClickThroughRate float64 `json:"click_through_rate"`
	EfficiencyScore  float64 `json:"efficiency_score"`
}

// DailyROIPoint é um ponto da linha de tendência de ROI: a MÉDIA dos
// roi_percentage reportados no dia.
type DailyROIPoint struct {
	Date   string  `json:"date"`
	AvgROI float64 `json:"avg_roi"`
}

// DailyRevenuePoint é um ponto da linha de tendência de receita: a SOMA de
// revenue_generated no dia. A assimetria média/soma entre as duas tendências
// é intencional e não deve ser unificada.
type DailyRevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}
