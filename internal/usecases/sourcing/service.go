package sourcing

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/roi-analytics-api/infrastructure/integrator/collector"
	"github.com/vfg2006/roi-analytics-api/infrastructure/repository"
	"github.com/vfg2006/roi-analytics-api/internal/config"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
	"github.com/vfg2006/roi-analytics-api/pkg/apiErrors"
)

// SourcingService expõe o estado das plataformas conectadas: quantos
// registros cada uma tem no banco e o intervalo coberto.
type SourcingService interface {
	ListPlatformActivity() (*domain.PlatformActivityResponse, error)
	PingCollector() error
}

type Service struct {
	recordRepository repository.PerformanceRecordRepository
	collectorService collector.CollectorIntegrator
	cfg              *config.Config
}

func NewService(
	recordRepo repository.PerformanceRecordRepository,
	collectorService collector.CollectorIntegrator,
	cfg *config.Config,
) SourcingService {
	return &Service{
		recordRepository: recordRepo,
		collectorService: collectorService,
		cfg:              cfg,
	}
}

func (s *Service) ListPlatformActivity() (*domain.PlatformActivityResponse, error) {
	activities, err := s.recordRepository.ListPlatformActivity()
	if err != nil {
		logrus.WithError(err).Error("sourcing: falha ao listar atividade de plataformas")
		return nil, NewSourcingError(ErrFetchActivity, apiErrors.ErrDatabaseOperation, "Falha ao listar plataformas no banco de dados")
	}

	return &domain.PlatformActivityResponse{
		Platforms: activities,
		Total:     len(activities),
	}, nil
}

// PingCollector verifica a disponibilidade da API do collector.
func (s *Service) PingCollector() error {
	if s.collectorService == nil {
		return nil
	}

	if err := s.collectorService.Ping(); err != nil {
		logrus.WithError(err).Warn("sourcing: collector indisponível")
		return NewSourcingError(ErrCollectorUnavailable, apiErrors.ErrExternalService, "Collector indisponível")
	}

	return nil
}
