package collectorclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	collectordomain "github.com/vfg2006/roi-analytics-api/infrastructure/integrator/collector/domain"
	"github.com/vfg2006/roi-analytics-api/internal/domain"
)

// GetPerformanceRows busca as linhas de desempenho do período na API do
// collector. O envelope da resposta varia entre deployments (all_data ou
// rows); a normalização fica no RecordsEnvelope.
func (c *CollectorClient) GetPerformanceRows(filters *domain.InsightFilters, platform string) ([]collectordomain.PerformanceRow, error) {
	baseURL := fmt.Sprintf("%s/v1/performance", c.config.Collector.URL)

	params := url.Values{}
	params.Add("since", filters.Window.Start.Format(time.DateOnly))
	params.Add("until", filters.Window.End.Format(time.DateOnly))
	if platform != "" {
		params.Add("platform", platform)
	}

	req, err := http.NewRequest(http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição para o collector")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Collector.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição para o collector")
		return nil, err
	}

	body, err := c.handleResponse(resp)
	if err != nil {
		return nil, err
	}

	var envelope collectordomain.RecordsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON do collector")
		return nil, err
	}

	return envelope.Records(), nil
}
