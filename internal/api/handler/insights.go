package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/roi-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/roi-analytics-api/pkg/log"
)

// GetPlatformInsights retorna as métricas agregadas por plataforma na janela
// pedida via query string (?range=7d|14d|30d|90d|1y).
func GetPlatformInsights(service aggregating.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rangeToken := r.URL.Query().Get("range")
		logger.WithField("range", rangeToken).Info("insights: fetching platform insights")

		response, err := service.GetPlatformInsights(rangeToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to get platform insights")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetROITrend retorna a série diária de ROI médio da janela.
func GetROITrend(service aggregating.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rangeToken := r.URL.Query().Get("range")
		logger.WithField("range", rangeToken).Info("insights: fetching ROI trend")

		response, err := service.GetROITrend(rangeToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to get ROI trend")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetRevenueTrend retorna a série diária de receita somada da janela.
func GetRevenueTrend(service aggregating.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rangeToken := r.URL.Query().Get("range")
		logger.WithField("range", rangeToken).Info("insights: fetching revenue trend")

		response, err := service.GetRevenueTrend(rangeToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to get revenue trend")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetSummary retorna os totais consolidados da janela para a visão de tabela.
func GetSummary(service aggregating.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rangeToken := r.URL.Query().Get("range")
		logger.WithField("range", rangeToken).Info("insights: fetching summary")

		response, err := service.GetSummary(rangeToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to get summary")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetDashboard retorna o snapshot completo do dashboard para a janela.
func GetDashboard(service aggregating.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rangeToken := r.URL.Query().Get("range")
		logger.WithField("range", rangeToken).Info("insights: fetching dashboard snapshot")

		snapshot, err := service.GetDashboard(rangeToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to get dashboard snapshot")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// RefreshDashboard força o recálculo do snapshot da janela e o devolve.
func RefreshDashboard(service aggregating.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rangeToken := r.URL.Query().Get("range")
		logger.WithField("range", rangeToken).Info("insights: refreshing dashboard snapshot")

		snapshot, err := service.RefreshDashboard(rangeToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to refresh dashboard snapshot")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			logger.WithFields(log.Fields{
				"range": rangeToken,
				"error": err.Error(),
			}).Error("insights: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
