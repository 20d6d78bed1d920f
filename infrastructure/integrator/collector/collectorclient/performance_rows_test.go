package collectorclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/roi-analytics-api/internal/config"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
)

func testFilters() *domain.InsightFilters {
	return &domain.InsightFilters{
		RangeToken: "7d",
		Window: domain.RangeWindow{
			Start: time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}

func newTestClient(serverURL string) Client {
	return NewClient(&config.Config{
		Collector: config.Collector{
			URL:         serverURL,
			AccessToken: "test-token",
		},
	})
}

func TestGetPerformanceRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/performance", r.URL.Path)
		assert.Equal(t, "2025-06-08", r.URL.Query().Get("since"))
		assert.Equal(t, "2025-06-15", r.URL.Query().Get("until"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"all_data": [
			{"platform": "facebook", "timestamp": "2025-06-10", "views": 100},
			{"platform": "instagram", "timestamp": "2025-06-11", "views": 50}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	rows, err := client.GetPerformanceRows(testFilters(), "")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "facebook", rows[0].Platform)
	assert.Equal(t, "instagram", rows[1].Platform)
}

func TestGetPerformanceRows_RowsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rows": [{"platform": "tiktok", "timestamp": "2025-06-12"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	rows, err := client.GetPerformanceRows(testFilters(), "")
	require.NoError(t, err)

	// A variante rows é normalizada pelo mesmo acessor
	require.Len(t, rows, 1)
	assert.Equal(t, "tiktok", rows[0].Platform)
}

func TestGetPerformanceRows_PlatformParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "facebook", r.URL.Query().Get("platform"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"all_data": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	rows, err := client.GetPerformanceRows(testFilters(), "facebook")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetPerformanceRows_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetPerformanceRows(testFilters(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token do collector rejeitado")
}

func TestGetPerformanceRows_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetPerformanceRows(testFilters(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
