package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceRecord_Sanitize(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	record := &PerformanceRecord{
		Platform:         "facebook",
		RevenueGenerated: nan,
		AdSpend:          inf,
		CostPerClick:     1.5,
		ROIPercentage:    &nan,
	}

	record.Sanitize()

	assert.Equal(t, 0.0, record.RevenueGenerated)
	assert.Equal(t, 0.0, record.AdSpend)
	assert.Equal(t, 1.5, record.CostPerClick)
	assert.Nil(t, record.ROIPercentage)
	assert.False(t, record.HasReportedROI())
}

func TestPerformanceRecord_NormalizedPlatform(t *testing.T) {
	assert.Equal(t, "facebook", (&PerformanceRecord{Platform: " FaceBook "}).NormalizedPlatform())
	assert.Equal(t, "", (&PerformanceRecord{Platform: "   "}).NormalizedPlatform())
}

func TestPerformanceRecord_Engagement(t *testing.T) {
	record := &PerformanceRecord{Likes: 10, Comments: 5, Shares: 5}

	assert.Equal(t, 20, record.Engagement())
}

func TestSafeFloat(t *testing.T) {
	assert.Equal(t, 0.0, SafeFloat(math.NaN()))
	assert.Equal(t, 0.0, SafeFloat(math.Inf(-1)))
	assert.Equal(t, 12.34, SafeFloat(12.34))
}

func TestMeanReportedROI(t *testing.T) {
	assert.Equal(t, 0.0, MeanReportedROI(nil))
	assert.Equal(t, 0.0, MeanReportedROI([]float64{}))
	assert.Equal(t, 150.0, MeanReportedROI([]float64{100, 200}))
}

func TestImpliedROI(t *testing.T) {
	assert.Equal(t, 0.0, ImpliedROI(100, 0))
	assert.Equal(t, 100.0, ImpliedROI(200, 100))
	assert.Equal(t, -50.0, ImpliedROI(50, 100))
}
