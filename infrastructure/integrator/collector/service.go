package collector

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/roi-analytics-api/infrastructure/integrator/collector/collectorclient"
	collectordomain "github.com/vfg2006/roi-analytics-api/infrastructure/integrator/collector/domain"
	"github.com/vfg2006/roi-analytics-api/internal/config"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
)

// CollectorIntegrator define a interface para obter registros de desempenho
// do collector.
type CollectorIntegrator interface {
	// FetchRecords obtém os registros do período, já convertidos e saneados.
	FetchRecords(filters *domain.InsightFilters, platform string) ([]*domain.PerformanceRecord, error)

	// Ping verifica a disponibilidade do collector.
	Ping() error
}

type Integrator struct {
	cfg    *config.Config
	Client collectorclient.Client
}

func New(cfg *config.Config, client collectorclient.Client) *Integrator {
	return &Integrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *Integrator) Ping() error {
	return s.Client.Status()
}

// FetchRecords busca as linhas cruas do collector e as converte para o
// domínio, coagindo numéricos ausentes ou não finitos para zero.
func (s *Integrator) FetchRecords(filters *domain.InsightFilters, platform string) ([]*domain.PerformanceRecord, error) {
	rows, err := s.Client.GetPerformanceRows(filters, platform)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform":   platform,
			"start_date": filters.Window.Start.Format(time.DateOnly),
			"end_date":   filters.Window.End.Format(time.DateOnly),
			"error":      err.Error(),
		}).Error("collector: falha ao buscar linhas de desempenho")
		return nil, err
	}

	records := make([]*domain.PerformanceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, factoryPerformanceRecord(row))
	}

	logrus.WithFields(logrus.Fields{
		"platform": platform,
		"rows":     len(rows),
	}).Debug("collector: linhas de desempenho recebidas")

	return records, nil
}

// factoryPerformanceRecord converte uma linha crua em PerformanceRecord.
// Timestamps irreconhecíveis viram time.Time zero e são descartados depois
// pelo filtro de janela.
func factoryPerformanceRecord(row collectordomain.PerformanceRow) *domain.PerformanceRecord {
	record := &domain.PerformanceRecord{
		Platform:         row.Platform,
		OccurredAt:       collectordomain.ParseTimestamp(row.Timestamp),
		Views:            intFromPtr(row.Views),
		Likes:            intFromPtr(row.Likes),
		Comments:         intFromPtr(row.Comments),
		Shares:           intFromPtr(row.Shares),
		Clicks:           intFromPtr(row.Clicks),
		RevenueGenerated: floatFromPtr(row.RevenueGenerated),
		AdSpend:          floatFromPtr(row.AdSpend),
		CostPerClick:     floatFromPtr(row.CostPerClick),
		ROIPercentage:    row.ROIPercentage,
	}

	record.Sanitize()

	return record
}

func intFromPtr(p *float64) int {
	if p == nil {
		return 0
	}
	return int(domain.SafeFloat(*p))
}

func floatFromPtr(p *float64) float64 {
	if p == nil {
		return 0
	}
	return domain.SafeFloat(*p)
}
