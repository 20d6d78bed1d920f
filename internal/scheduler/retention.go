package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/roi-analytics-api/infrastructure/repository"
	"github.com/vfg2006/roi-analytics-api/internal/config"
)

// RetentionConfig representa a configuração do agendador de retenção
type RetentionConfig struct {
	CronSchedule string
	Days         int
	Enabled      bool
}

// RetentionService remove periodicamente registros de desempenho mais
// antigos que a janela de retenção configurada
type RetentionService struct {
	scheduler     *gocron.Scheduler
	config        RetentionConfig
	recordRepo    repository.PerformanceRecordRepository
	runMutex      sync.Mutex
	running       bool
	lastRunAt     time.Time
	lastRunPurged int64
}

// NewRetentionService cria uma nova instância do serviço de retenção
func NewRetentionService(
	recordRepo repository.PerformanceRecordRepository,
	appConfig *config.Config,
) *RetentionService {
	retentionConfig := RetentionConfig{
		CronSchedule: appConfig.Retention.CronSchedule,
		Days:         appConfig.Retention.Days,
		Enabled:      appConfig.Retention.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  retentionConfig.CronSchedule,
		"retention_days": retentionConfig.Days,
		"enabled":        retentionConfig.Enabled,
	}).Info("Configuração do agendador de retenção carregada")

	return &RetentionService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     retentionConfig,
		recordRepo: recordRepo,
	}
}

// Start inicia o agendador
func (s *RetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Retenção de registros de desempenho desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de retenção de registros de desempenho")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.purgeExpiredRecords()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar retenção de registros de desempenho: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de retenção de registros de desempenho")
		s.scheduler.Stop()
	}()

	return nil
}

// purgeExpiredRecords remove os registros mais antigos que a janela de retenção
func (s *RetentionService) purgeExpiredRecords() {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Info("Retenção de registros de desempenho já em andamento, ignorando")
		return
	}
	s.running = true
	s.runMutex.Unlock()

	defer func() {
		s.runMutex.Lock()
		s.running = false
		s.runMutex.Unlock()
	}()

	logrus.WithField("retention_days", s.config.Days).Info("Iniciando limpeza de registros de desempenho expirados")

	purged, err := s.recordRepo.DeleteOlderThan(s.config.Days)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover registros de desempenho expirados")
		return
	}

	s.lastRunAt = time.Now()
	s.lastRunPurged = purged

	logrus.WithFields(logrus.Fields{
		"purged":         purged,
		"retention_days": s.config.Days,
	}).Info("Limpeza de registros de desempenho concluída")
}

// TriggerManualRun inicia manualmente uma limpeza de registros expirados
func (s *RetentionService) TriggerManualRun() {
	logrus.Info("Iniciando limpeza manual de registros de desempenho expirados")
	go s.purgeExpiredRecords()
}

// GetStatus retorna o status atual do agendador
func (s *RetentionService) GetStatus() map[string]any {
	return map[string]any{
		"retention_enabled": s.config.Enabled,
		"retention_cron":    s.config.CronSchedule,
		"retention_days":    s.config.Days,
		"last_run_at":       s.lastRunAt,
		"last_run_purged":   s.lastRunPurged,
	}
}
