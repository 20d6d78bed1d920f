package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	collectormocks "github.com/vfg2006/roi-analytics-api/infrastructure/integrator/collector/mocks"
	"github.com/vfg2006/roi-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(recordRepo *mocks.MockPerformanceRecordRepository, collectorService *collectormocks.MockCollectorIntegrator) *PerformanceSyncService {
	return &PerformanceSyncService{
		config: PerformanceSyncConfig{
			LookbackDays:        3,
			RequestDelaySeconds: 0,
			MaxConcurrentJobs:   2,
			SyncEnabled:         true,
		},
		recordRepo:       recordRepo,
		collectorService: collectorService,
	}
}

func TestPerformanceSyncService_processDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)
	mockCollector := collectormocks.NewMockCollectorIntegrator(ctrl)
	service := newTestSyncService(mockRepo, mockCollector)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	records := []*domain.PerformanceRecord{
		{Platform: "facebook", OccurredAt: date.Add(8 * time.Hour), Views: 100},
		{Platform: "", OccurredAt: date.Add(9 * time.Hour)},   // sem plataforma, pulado
		{Platform: "instagram", OccurredAt: time.Time{}},      // timestamp zero, pulado
		{Platform: "tiktok", OccurredAt: date.Add(10 * time.Hour), Views: 50},
	}

	mockCollector.EXPECT().
		FetchRecords(gomock.Any(), "").
		DoAndReturn(func(filters *domain.InsightFilters, platform string) ([]*domain.PerformanceRecord, error) {
			// Janela de um dia, semiaberta
			assert.Equal(t, date, filters.Window.Start)
			assert.Equal(t, date.AddDate(0, 0, 1), filters.Window.End)
			return records, nil
		})

	mockRepo.EXPECT().SaveOrUpdate(records[0]).Return(nil)
	mockRepo.EXPECT().SaveOrUpdate(records[3]).Return(nil)

	saved := service.processDate(logrus.WithField("sync_run_id", "test"), date)

	assert.Equal(t, int64(2), saved)
}

func TestPerformanceSyncService_processDate_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)
	mockCollector := collectormocks.NewMockCollectorIntegrator(ctrl)
	service := newTestSyncService(mockRepo, mockCollector)

	mockCollector.EXPECT().
		FetchRecords(gomock.Any(), "").
		Return(nil, errors.New("collector timeout"))

	saved := service.processDate(logrus.WithField("sync_run_id", "test"), time.Now())

	assert.Equal(t, int64(0), saved)
}

func TestPerformanceSyncService_processDate_SaveErrorContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)
	mockCollector := collectormocks.NewMockCollectorIntegrator(ctrl)
	service := newTestSyncService(mockRepo, mockCollector)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	records := []*domain.PerformanceRecord{
		{Platform: "facebook", OccurredAt: date.Add(8 * time.Hour)},
		{Platform: "instagram", OccurredAt: date.Add(9 * time.Hour)},
	}

	mockCollector.EXPECT().
		FetchRecords(gomock.Any(), "").
		Return(records, nil)

	// O erro no primeiro registro não interrompe o restante
	mockRepo.EXPECT().SaveOrUpdate(records[0]).Return(errors.New("deadlock"))
	mockRepo.EXPECT().SaveOrUpdate(records[1]).Return(nil)

	saved := service.processDate(logrus.WithField("sync_run_id", "test"), date)

	assert.Equal(t, int64(1), saved)
}

func TestPerformanceSyncService_getDatesToProcess(t *testing.T) {
	service := &PerformanceSyncService{
		config: PerformanceSyncConfig{LookbackDays: 3},
	}

	dates := service.getDatesToProcess()

	assert.Len(t, dates, 3)

	// Começa em ontem e anda para trás, nunca inclui hoje
	today := time.Now().Format(time.DateOnly)
	for i, date := range dates {
		assert.NotEqual(t, today, date.Format(time.DateOnly))
		if i > 0 {
			assert.True(t, date.Before(dates[i-1]))
		}
	}
}

func TestRetentionService_purgeExpiredRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)

	service := &RetentionService{
		config: RetentionConfig{
			Days:    730,
			Enabled: true,
		},
		recordRepo: mockRepo,
	}

	mockRepo.EXPECT().DeleteOlderThan(730).Return(int64(12), nil)

	service.purgeExpiredRecords()

	assert.Equal(t, int64(12), service.lastRunPurged)
	assert.False(t, service.lastRunAt.IsZero())
}

func TestRetentionService_purgeExpiredRecords_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)

	service := &RetentionService{
		config:     RetentionConfig{Days: 365, Enabled: true},
		recordRepo: mockRepo,
	}

	mockRepo.EXPECT().DeleteOlderThan(365).Return(int64(0), errors.New("connection refused"))

	service.purgeExpiredRecords()

	// Falha não atualiza o marcador da última execução
	assert.True(t, service.lastRunAt.IsZero())
	assert.Equal(t, int64(0), service.lastRunPurged)
}
