package handler

import (
	"net/http"

	"github.com/vfg2006/ad-performance-api/infrastructure/repository"
	"github.com/vfg2006/ad-performance-api/internal/api/handler/router"
	"github.com/vfg2006/ad-performance-api/internal/scheduler"
	"github.com/vfg2006/ad-performance-api/internal/usecases/aggregating"
	"github.com/vfg2006/ad-performance-api/internal/usecases/authenticating"
	"github.com/vfg2006/ad-performance-api/internal/usecases/validating"
)

// DatasetServices agrupa as dependências das rotas de dataset
type DatasetServices struct {
	Store          repository.DatasetStore
	Validator      validating.Validator
	Aggregator     aggregating.Aggregator
	UploadMaxBytes int64
}

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Datasets(services DatasetServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/datasets",
			Method:  http.MethodPost,
			Handler: UploadDataset(services.Store, services.UploadMaxBytes),
		},
		{
			Path:    "/v1/datasets",
			Method:  http.MethodGet,
			Handler: ListDatasets(services.Store),
		},
		{
			Path:    "/v1/datasets/:id",
			Method:  http.MethodDelete,
			Handler: DeleteDataset(services.Store),
		},
		{
			Path:    "/v1/datasets/:id/validation",
			Method:  http.MethodGet,
			Handler: GetValidationReport(services.Store, services.Validator),
		},
		{
			Path:    "/v1/datasets/:id/metrics",
			Method:  http.MethodGet,
			Handler: GetDatasetMetrics(services.Store, services.Aggregator),
		},
	}
}

func CronJobs(service *scheduler.DatasetCleanupService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/dataset-cleanup/run",
			Method:  http.MethodPost,
			Handler: RunDatasetCleanup(service),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(service),
		},
	}
}
