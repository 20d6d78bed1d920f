package collectorclient

import (
	"fmt"
	"io"
	"net/http"
	"time"

	collectordomain "github.com/vfg2006/roi-analytics-api/infrastructure/integrator/collector/domain"
	"github.com/vfg2006/roi-analytics-api/internal/config"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
	"github.com/vfg2006/roi-analytics-api/pkg/utils"
)

type Client interface {
	GetPerformanceRows(filters *domain.InsightFilters, platform string) ([]collectordomain.PerformanceRow, error)
	Status() error
}

type CollectorClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &CollectorClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}

// Status verifica se a API do collector está respondendo.
func (c *CollectorClient) Status() error {
	url := fmt.Sprintf("%s/v1/status", c.config.Collector.URL)

	_, err := utils.MakeRequest(url)
	if err != nil {
		return fmt.Errorf("collector indisponível: %w", err)
	}

	return nil
}

// handleResponse valida o status HTTP e lê o corpo da resposta.
func (c *CollectorClient) handleResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o corpo da resposta: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("token do collector rejeitado (status %d)", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("collector respondeu status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
