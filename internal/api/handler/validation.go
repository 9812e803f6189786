package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ad-performance-api/infrastructure/repository"
	"github.com/vfg2006/ad-performance-api/internal/usecases/validating"
	"github.com/vfg2006/ad-performance-api/pkg/apiErrors"
	"github.com/vfg2006/ad-performance-api/pkg/log"
)

// GetValidationReport valida o dataset armazenado e devolve o relatório
// completo: contagens, flag de prosseguimento e a lista ordenada de erros
func GetValidationReport(store repository.DatasetStore, validator validating.Validator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		upload, err := store.Get(id)
		if err != nil {
			logger.WithError(err).WithField("dataset_id", id).Error("validation: failed to load upload")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar upload", nil)
			return
		}

		if upload == nil {
			apiErrors.WriteError(w, apiErrors.ErrDatasetNotFound, "Dataset não encontrado", nil)
			return
		}

		report := validator.Validate(upload.Dataset)

		logger.WithFields(log.Fields{
			"dataset_id":      id,
			"dataset_total":   report.Total,
			"dataset_invalid": report.Invalid,
		}).Info("validation: report produced")

		respondJSON(w, r, http.StatusOK, report)
	})
}
