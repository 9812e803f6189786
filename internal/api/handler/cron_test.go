package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-performance-api/infrastructure/repository"
	"github.com/vfg2006/ad-performance-api/internal/api/handler/router"
	"github.com/vfg2006/ad-performance-api/internal/config"
	"github.com/vfg2006/ad-performance-api/internal/domain"
	"github.com/vfg2006/ad-performance-api/internal/scheduler"
)

func TestCronRoutes(t *testing.T) {
	store := repository.NewMemoryDatasetStore()
	require.NoError(t, store.Save(&domain.DatasetUpload{
		ID:         "expirado",
		UploadedAt: time.Now().Add(-48 * time.Hour),
	}))

	cleanup := scheduler.NewDatasetCleanupService(store, &config.Config{
		DatasetRetention: config.DatasetRetention{
			CronSchedule: "0 * * * *",
			TTLHours:     24,
			Enabled:      true,
		},
	})

	handler := router.New(router.WithRoutes(CronJobs(cleanup)...))

	t.Run("Disparo manual remove uploads expirados", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/cron/dataset-cleanup/run", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp["removed"])
	})

	t.Run("Status reflete a última execução", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var status map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, true, status["enabled"])
		assert.Equal(t, float64(1), status["last_run_removed"])
	})
}
