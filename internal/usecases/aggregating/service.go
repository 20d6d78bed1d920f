package aggregating

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/roi-analytics-api/infrastructure/integrator/collector"
	"github.com/vfg2006/roi-analytics-api/infrastructure/repository"
	"github.com/vfg2006/roi-analytics-api/internal/config"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
)

// Service implementa Insighter sobre o cache de registros no banco, com
// fallback para a API do collector quando o cache está vazio.
type Service struct {
	cfg              *config.Config
	recordRepository repository.PerformanceRecordRepository
	collectorService collector.CollectorIntegrator
	board            *snapshotBoard
}

// NewService cria uma nova instância do serviço de agregação.
func NewService(
	cfg *config.Config,
	recordRepo repository.PerformanceRecordRepository,
	collectorService collector.CollectorIntegrator,
) Insighter {
	return &Service{
		cfg:              cfg,
		recordRepository: recordRepo,
		collectorService: collectorService,
		board:            newSnapshotBoard(),
	}
}

// resolveFilters monta os filtros concretos a partir do token de range.
func (s *Service) resolveFilters(rangeToken string) *domain.InsightFilters {
	token := NormalizeRangeToken(rangeToken)

	return &domain.InsightFilters{
		RangeToken: token,
		Window:     ResolveWindow(token, time.Now()),
	}
}

// loadRecords carrega os registros da janela. Falhas de banco e de rede são
// registradas e degradam para lista vazia; o dashboard mostra estado vazio
// em vez de quebrar.
func (s *Service) loadRecords(filters *domain.InsightFilters) []*domain.PerformanceRecord {
	records, err := s.recordRepository.GetByDateRange(filters.Window.Start, filters.Window.End)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"range":      filters.RangeToken,
			"start_date": filters.Window.Start.Format(time.DateOnly),
			"end_date":   filters.Window.End.Format(time.DateOnly),
		}).Warn("aggregating: erro ao buscar registros do banco")
		records = nil
	}

	if len(records) == 0 && s.collectorService != nil {
		fetched, err := s.collectorService.FetchRecords(filters, "")
		if err != nil {
			logrus.WithError(err).WithField("range", filters.RangeToken).
				Warn("aggregating: erro ao buscar registros do collector")
		} else {
			records = fetched
		}
	}

	return FilterByWindow(records, filters.Window)
}

func (s *Service) GetPlatformInsights(rangeToken string) (*domain.PlatformInsightsResponse, error) {
	filters := s.resolveFilters(rangeToken)
	records := s.loadRecords(filters)

	return &domain.PlatformInsightsResponse{
		Range:     filters.RangeToken,
		StartDate: filters.Window.Start.Format(time.DateOnly),
		EndDate:   filters.Window.End.Format(time.DateOnly),
		Platforms: AggregateByPlatform(records),
	}, nil
}

func (s *Service) GetROITrend(rangeToken string) (*domain.ROITrendResponse, error) {
	filters := s.resolveFilters(rangeToken)
	records := s.loadRecords(filters)

	return &domain.ROITrendResponse{
		Range:     filters.RangeToken,
		StartDate: filters.Window.Start.Format(time.DateOnly),
		EndDate:   filters.Window.End.Format(time.DateOnly),
		Points:    AggregateROIByDay(records),
	}, nil
}

func (s *Service) GetRevenueTrend(rangeToken string) (*domain.RevenueTrendResponse, error) {
	filters := s.resolveFilters(rangeToken)
	records := s.loadRecords(filters)

	return &domain.RevenueTrendResponse{
		Range:     filters.RangeToken,
		StartDate: filters.Window.Start.Format(time.DateOnly),
		EndDate:   filters.Window.End.Format(time.DateOnly),
		Points:    AggregateRevenueByDay(records),
	}, nil
}

func (s *Service) GetSummary(rangeToken string) (*domain.InsightSummary, error) {
	filters := s.resolveFilters(rangeToken)
	records := s.loadRecords(filters)

	return BuildSummary(filters, records), nil
}

// GetDashboard devolve o último snapshot comprometido para o range; quando
// ainda não existe, dispara uma atualização síncrona.
func (s *Service) GetDashboard(rangeToken string) (*domain.DashboardSnapshot, error) {
	token := NormalizeRangeToken(rangeToken)

	if snapshot := s.board.get(token); snapshot != nil {
		return snapshot, nil
	}

	return s.RefreshDashboard(token)
}

// RefreshDashboard recalcula o snapshot do range. A sequência é reservada
// antes da busca dos dados; se outra atualização mais nova terminar primeiro,
// este resultado é descartado e o snapshot mais novo é devolvido.
func (s *Service) RefreshDashboard(rangeToken string) (*domain.DashboardSnapshot, error) {
	seq := s.board.nextSeq()

	filters := s.resolveFilters(rangeToken)
	records := s.loadRecords(filters)

	snapshot := &domain.DashboardSnapshot{
		Range:        filters.RangeToken,
		StartDate:    filters.Window.Start.Format(time.DateOnly),
		EndDate:      filters.Window.End.Format(time.DateOnly),
		Platforms:    AggregateByPlatform(records),
		ROITrend:     AggregateROIByDay(records),
		RevenueTrend: AggregateRevenueByDay(records),
		Summary:      BuildSummary(filters, records),
		Sequence:     seq,
		GeneratedAt:  time.Now(),
	}

	if !s.board.commit(snapshot) {
		logrus.WithFields(logrus.Fields{
			"range":    filters.RangeToken,
			"sequence": seq,
		}).Info("aggregating: resposta obsoleta descartada, mantendo snapshot mais novo")

		return s.board.get(filters.RangeToken), nil
	}

	return snapshot, nil
}
