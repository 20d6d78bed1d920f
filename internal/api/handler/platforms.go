package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/roi-analytics-api/internal/usecases/sourcing"
	"github.com/vfg2006/roi-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/roi-analytics-api/pkg/log"
)

// ListPlatforms retorna as plataformas conectadas com contagem de registros e
// intervalo coberto no banco.
func ListPlatforms(service sourcing.SourcingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		logger.Info("platforms: listing connected platforms")

		response, err := service.ListPlatformActivity()
		if err != nil {
			logger.WithError(err).Error("platforms: failed to list platform activity")

			var sourcingErr *sourcing.SourcingError
			if errors.As(err, &sourcingErr) {
				apiErrors.WriteError(w, sourcingErr.Code, sourcingErr.Details, nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar plataformas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("platforms: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
