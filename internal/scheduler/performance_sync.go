package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/roi-analytics-api/infrastructure/integrator/collector"
	"github.com/vfg2006/roi-analytics-api/infrastructure/repository"
	"github.com/vfg2006/roi-analytics-api/internal/config"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
	"github.com/vfg2006/roi-analytics-api/pkg/utils"
)

var (
	syncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roi_api_performance_sync_runs_total",
			Help: "Total de execuções da sincronização de registros de desempenho",
		},
		[]string{"trigger"},
	)

	syncRecordsSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roi_api_performance_sync_records_saved_total",
			Help: "Total de registros de desempenho salvos pela sincronização",
		},
	)

	syncErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roi_api_performance_sync_errors_total",
			Help: "Total de erros durante a sincronização de registros de desempenho",
		},
		[]string{"stage"},
	)
)

// PerformanceSyncConfig representa a configuração do agendador de
// sincronização de registros de desempenho
type PerformanceSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// PerformanceSyncService gerencia o agendamento e execução da sincronização
// de registros de desempenho do collector para o banco local
type PerformanceSyncService struct {
	scheduler           *gocron.Scheduler
	config              PerformanceSyncConfig
	appConfig           *config.Config
	recordRepo          repository.PerformanceRecordRepository
	collectorService    collector.CollectorIntegrator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncSaved       int64
}

// NewPerformanceSyncService cria uma nova instância do serviço de sincronização
func NewPerformanceSyncService(
	recordRepo repository.PerformanceRecordRepository,
	collectorService collector.CollectorIntegrator,
	appConfig *config.Config,
) *PerformanceSyncService {
	// Criar a configuração com base na config global
	syncConfig := PerformanceSyncConfig{
		CronSchedule:        appConfig.PerformanceSync.CronSchedule,
		LookbackDays:        appConfig.PerformanceSync.LookbackDays,
		RequestDelaySeconds: appConfig.PerformanceSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.PerformanceSync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.PerformanceSync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de desempenho carregada")

	return &PerformanceSyncService{
		scheduler:        scheduler,
		config:           syncConfig,
		appConfig:        appConfig,
		recordRepo:       recordRepo,
		collectorService: collectorService,
		syncRunning:      false,
	}
}

// Start inicia o agendador
func (s *PerformanceSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de registros de desempenho desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de registros de desempenho")

	// Agendar a sincronização
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllRecords("cron")
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de registros de desempenho: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de registros de desempenho")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllRecords sincroniza os registros de desempenho de todo o período de lookback
func (s *PerformanceSyncService) syncAllRecords(trigger string) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de registros de desempenho já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	syncRunsTotal.WithLabelValues(trigger).Inc()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	runID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar identificador da sincronização")
		syncErrorsTotal.WithLabelValues("run_id").Inc()
		return
	}

	log := logrus.WithField("sync_run_id", runID)
	log.Info("Iniciando sincronização de registros de desempenho")

	// Criar datas para processamento
	dates := s.getDatesToProcess()
	log.WithFields(logrus.Fields{
		"days":       s.config.LookbackDays,
		"start_date": dates[len(dates)-1].Format(time.DateOnly),
		"end_date":   dates[0].Format(time.DateOnly),
	}).Info("Período para sincronização de registros de desempenho")

	saved := s.processDates(log, dates)
	s.lastSyncSaved = saved

	duration := time.Since(startTime)
	log.WithFields(logrus.Fields{
		"duration": duration.String(),
		"days":     s.config.LookbackDays,
		"saved":    saved,
	}).Info("Sincronização de registros de desempenho concluída")

	s.lastSyncCompletedAt = time.Now()
}

// getDatesToProcess cria um conjunto de datas para processar
func (s *PerformanceSyncService) getDatesToProcess() []time.Time {
	dates := make([]time.Time, s.config.LookbackDays)
	for i := 0; i < s.config.LookbackDays; i++ {
		dates[i] = time.Now().AddDate(0, 0, -i-1) // Começar de ontem e ir para trás
	}
	return dates
}

// processDates processa as datas em paralelo, limitado pelo semáforo
func (s *PerformanceSyncService) processDates(log *logrus.Entry, dates []time.Time) int64 {
	// Criar um canal para controlar o número de workers concorrentes
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	var savedMutex sync.Mutex
	var saved int64

	for _, date := range dates {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(day time.Time) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			count := s.processDate(log, day)

			savedMutex.Lock()
			saved += count
			savedMutex.Unlock()

			// Aguardar antes da próxima requisição para evitar sobrecarga na API
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}(date)
	}

	// Aguardar todos os workers terminarem
	wg.Wait()

	return saved
}

// processDate busca os registros de um dia no collector e persiste no banco
func (s *PerformanceSyncService) processDate(log *logrus.Entry, date time.Time) int64 {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	filters := &domain.InsightFilters{
		Window: domain.RangeWindow{
			Start: dayStart,
			End:   dayStart.AddDate(0, 0, 1),
		},
	}

	log.WithField("date", dayStart.Format(time.DateOnly)).Info("Obtendo registros de desempenho do collector")

	records, err := s.collectorService.FetchRecords(filters, "")
	if err != nil {
		log.WithFields(logrus.Fields{
			"date":  dayStart.Format(time.DateOnly),
			"error": err.Error(),
		}).Error("Erro ao obter registros de desempenho do collector")
		syncErrorsTotal.WithLabelValues("fetch").Inc()
		return 0
	}

	if len(records) == 0 {
		log.WithField("date", dayStart.Format(time.DateOnly)).Warn("Nenhum registro de desempenho obtido para a data")
		return 0
	}

	var saved int64
	for _, record := range records {
		if record.OccurredAt.IsZero() || record.NormalizedPlatform() == "" {
			continue
		}

		if err := s.recordRepo.SaveOrUpdate(record); err != nil {
			log.WithFields(logrus.Fields{
				"date":     dayStart.Format(time.DateOnly),
				"platform": record.NormalizedPlatform(),
				"error":    err.Error(),
			}).Error("Erro ao salvar registro de desempenho no banco de dados")
			syncErrorsTotal.WithLabelValues("save").Inc()
			continue
		}

		saved++
		syncRecordsSavedTotal.Inc()
	}

	log.WithFields(logrus.Fields{
		"date":  dayStart.Format(time.DateOnly),
		"saved": saved,
	}).Info("Registros de desempenho salvos com sucesso para a data")

	return saved
}

// TriggerManualSync inicia manualmente uma sincronização de registros de desempenho
func (s *PerformanceSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de registros de desempenho já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de registros de desempenho")
	go s.syncAllRecords("manual")
}

// GetStatus retorna o status atual do agendador
func (s *PerformanceSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_saved":        s.lastSyncSaved,
	}
}
