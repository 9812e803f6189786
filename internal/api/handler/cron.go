package handler

import (
	"net/http"

	"github.com/vfg2006/ad-performance-api/internal/scheduler"
	"github.com/vfg2006/ad-performance-api/pkg/apiErrors"
	"github.com/vfg2006/ad-performance-api/pkg/log"
)

// RunDatasetCleanup dispara manualmente a limpeza de uploads expirados
func RunDatasetCleanup(service *scheduler.DatasetCleanupService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		removed, err := service.RunCleanup()
		if err != nil {
			logger.WithError(err).Error("cron: manual dataset cleanup failed")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao executar limpeza", nil)
			return
		}

		logger.WithField("removed", removed).Info("cron: manual dataset cleanup finished")
		respondJSON(w, r, http.StatusOK, map[string]any{"removed": removed})
	})
}

// GetCronStatus expõe o estado da última execução da limpeza
func GetCronStatus(service *scheduler.DatasetCleanupService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, service.Status())
	})
}
