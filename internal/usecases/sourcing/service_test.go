package sourcing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/roi-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/roi-analytics-api/internal/config"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_ListPlatformActivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)

	service := NewService(mockRepo, nil, &config.Config{})

	firstFacebook := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	firstInstagram := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mockRepo.EXPECT().ListPlatformActivity().Return([]*domain.PlatformActivity{
		{Platform: "facebook", RecordCount: 120, FirstRecordAt: &firstFacebook},
		{Platform: "instagram", RecordCount: 80, FirstRecordAt: &firstInstagram},
	}, nil)

	response, err := service.ListPlatformActivity()
	require.NoError(t, err)

	assert.Equal(t, 2, response.Total)
	assert.Equal(t, "facebook", response.Platforms[0].Platform)
}

func TestService_ListPlatformActivity_DatabaseError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceRecordRepository(ctrl)

	service := NewService(mockRepo, nil, &config.Config{})

	mockRepo.EXPECT().ListPlatformActivity().Return(nil, errors.New("connection refused"))

	_, err := service.ListPlatformActivity()
	require.Error(t, err)

	var sourcingErr *SourcingError
	require.ErrorAs(t, err, &sourcingErr)
	assert.True(t, errors.Is(err, ErrFetchActivity))
}
