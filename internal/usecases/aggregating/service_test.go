package aggregating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	collectormocks "github.com/vfg2006/roi-analytics-api/infrastructure/integrator/collector/mocks"
	"github.com/vfg2006/roi-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/roi-analytics-api/internal/config"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(recordRepo *mocks.MockPerformanceRecordRepository, collectorService *collectormocks.MockCollectorIntegrator) *Service {
	return &Service{
		cfg:              &config.Config{},
		recordRepository: recordRepo,
		collectorService: collectorService,
		board:            newSnapshotBoard(),
	}
}

func yesterdayAt(hour int) time.Time {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -1).Add(time.Duration(hour) * time.Hour)
}

func TestService_GetPlatformInsights(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)
	mockCollector := collectormocks.NewMockCollectorIntegrator(ctrl)
	service := newTestService(mockRepo, mockCollector)

	records := []*domain.PerformanceRecord{
		{Platform: "facebook", OccurredAt: yesterdayAt(10), Views: 100, Likes: 10, Comments: 5, Shares: 5, RevenueGenerated: 50, AdSpend: 10},
	}

	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any()).
		Return(records, nil)

	response, err := service.GetPlatformInsights("7d")
	require.NoError(t, err)

	assert.Equal(t, "7d", response.Range)
	require.Len(t, response.Platforms, 1)
	assert.Equal(t, "facebook", response.Platforms[0].Platform)
	assert.Equal(t, 100, response.Platforms[0].Impressions)
	assert.Equal(t, 20, response.Platforms[0].Engagement)
	assert.Equal(t, 40.0, response.Platforms[0].Profit)
}

func TestService_GetPlatformInsights_UnknownRangeFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)
	mockCollector := collectormocks.NewMockCollectorIntegrator(ctrl)
	service := newTestService(mockRepo, mockCollector)

	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any()).
		DoAndReturn(func(start, end time.Time) ([]*domain.PerformanceRecord, error) {
			// Token desconhecido resolve para a janela default de 7 dias
			assert.Equal(t, 7*24*time.Hour, end.Sub(start))
			return []*domain.PerformanceRecord{
				{Platform: "facebook", OccurredAt: yesterdayAt(10), Views: 1},
			}, nil
		})

	response, err := service.GetPlatformInsights("45d")
	require.NoError(t, err)

	assert.Equal(t, DefaultRangeToken, response.Range)
}

func TestService_DegradesToEmptyOnFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)
	mockCollector := collectormocks.NewMockCollectorIntegrator(ctrl)
	service := newTestService(mockRepo, mockCollector)

	// Banco e collector falham: o resultado degrada para vazio, sem erro
	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	mockCollector.EXPECT().
		FetchRecords(gomock.Any(), "").
		Return(nil, errors.New("collector timeout"))

	response, err := service.GetPlatformInsights("7d")
	require.NoError(t, err)

	assert.Empty(t, response.Platforms)
}

func TestService_FallsBackToCollectorWhenDatabaseEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)
	mockCollector := collectormocks.NewMockCollectorIntegrator(ctrl)
	service := newTestService(mockRepo, mockCollector)

	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	mockCollector.EXPECT().
		FetchRecords(gomock.Any(), "").
		Return([]*domain.PerformanceRecord{
			{Platform: "instagram", OccurredAt: yesterdayAt(8), Views: 42},
		}, nil)

	response, err := service.GetPlatformInsights("7d")
	require.NoError(t, err)

	require.Len(t, response.Platforms, 1)
	assert.Equal(t, "instagram", response.Platforms[0].Platform)
}

func TestService_GetSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)
	mockCollector := collectormocks.NewMockCollectorIntegrator(ctrl)
	service := newTestService(mockRepo, mockCollector)

	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any()).
		Return([]*domain.PerformanceRecord{
			{Platform: "facebook", OccurredAt: yesterdayAt(9), RevenueGenerated: 300, AdSpend: 100},
		}, nil)

	summary, err := service.GetSummary("30d")
	require.NoError(t, err)

	assert.Equal(t, "30d", summary.Range)
	assert.Equal(t, 300.0, summary.TotalRevenue)
	assert.Equal(t, 200.0, summary.TotalProfit)
	assert.Equal(t, 200.0, summary.ImpliedROI)
	assert.Equal(t, 1, summary.RecordCount)
}

func TestService_GetDashboard_ReusesCommittedSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)
	mockCollector := collectormocks.NewMockCollectorIntegrator(ctrl)
	service := newTestService(mockRepo, mockCollector)

	// Uma única ida ao banco: o segundo GetDashboard usa o snapshot
	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any()).
		Return([]*domain.PerformanceRecord{
			{Platform: "facebook", OccurredAt: yesterdayAt(9), Views: 10},
		}, nil).
		Times(1)

	first, err := service.GetDashboard("7d")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := service.GetDashboard("7d")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestService_RefreshDashboard_StaleResultDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)
	mockCollector := collectormocks.NewMockCollectorIntegrator(ctrl)
	service := newTestService(mockRepo, mockCollector)

	// Simula um refresh mais novo comprometido enquanto o refresh corrente
	// ainda busca os dados
	mockRepo.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any()).
		DoAndReturn(func(start, end time.Time) ([]*domain.PerformanceRecord, error) {
			newerSeq := service.board.nextSeq()
			service.board.commit(&domain.DashboardSnapshot{Range: "7d", Sequence: newerSeq})
			return nil, nil
		})

	mockCollector.EXPECT().
		FetchRecords(gomock.Any(), "").
		Return(nil, nil)

	snapshot, err := service.RefreshDashboard("7d")
	require.NoError(t, err)

	// O resultado obsoleto foi descartado: o snapshot devolvido é o mais novo
	assert.Equal(t, service.board.get("7d"), snapshot)
	assert.Empty(t, snapshot.Platforms)
}
