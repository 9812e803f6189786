package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ad-performance-api/infrastructure/repository"
	"github.com/vfg2006/ad-performance-api/internal/domain"
	"github.com/vfg2006/ad-performance-api/internal/usecases/aggregating"
	"github.com/vfg2006/ad-performance-api/pkg/apiErrors"
	"github.com/vfg2006/ad-performance-api/pkg/log"
)

// GetDatasetMetrics agrega o dataset armazenado e devolve as tabelas do
// dashboard. Query params: objective (filtro das visões categóricas) e top
// (tamanho do ranking de AdSets).
func GetDatasetMetrics(store repository.DatasetStore, aggregator aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		upload, err := store.Get(id)
		if err != nil {
			logger.WithError(err).WithField("dataset_id", id).Error("metrics: failed to load upload")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar upload", nil)
			return
		}

		if upload == nil {
			apiErrors.WriteError(w, apiErrors.ErrDatasetNotFound, "Dataset não encontrado", nil)
			return
		}

		opts := &domain.AggregationOptions{
			FilterObjective: r.URL.Query().Get("objective"),
		}

		if rawTop := r.URL.Query().Get("top"); rawTop != "" {
			top, err := strconv.Atoi(rawTop)
			if err != nil || top <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro 'top' deve ser um inteiro positivo", nil)
				return
			}
			opts.TopN = top
		}

		metrics := aggregator.Aggregate(upload.Dataset, opts)

		logger.WithFields(log.Fields{
			"dataset_id":      id,
			"dataset_adsets":  len(metrics.ByAdSet),
			"date_exclusions": metrics.DateExclusions,
		}).Info("metrics: aggregation produced")

		respondJSON(w, r, http.StatusOK, metrics)
	})
}
