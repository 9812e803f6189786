package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-performance-api/infrastructure/repository"
	"github.com/vfg2006/ad-performance-api/internal/api/handler/router"
	"github.com/vfg2006/ad-performance-api/internal/config"
	"github.com/vfg2006/ad-performance-api/internal/domain"
	"github.com/vfg2006/ad-performance-api/internal/usecases/aggregating"
	"github.com/vfg2006/ad-performance-api/internal/usecases/validating"
)

const sampleCSV = "date,campaign_name,adset_name,amount_spent,conversions,objective,ad_type\n" +
	"2024-03-04,Campanha A,Lookalike 1%,100.00,4,leads,video\n" +
	"2024-03-05,Campanha A,Interesses,50.00,0,leads,imagem\n"

func newTestRouter(store repository.DatasetStore) router.Router {
	cfg := &config.Config{Upload: config.Upload{DefaultTopN: 15}}

	services := DatasetServices{
		Store:          store,
		Validator:      validating.NewService(),
		Aggregator:     aggregating.NewService(cfg),
		UploadMaxBytes: 1 << 20,
	}

	return router.New(router.WithRoutes(Datasets(services)...))
}

func storeWithUpload(t *testing.T, csv string) repository.DatasetStore {
	t.Helper()

	store := repository.NewMemoryDatasetStore()
	handler := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/v1/datasets", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	return store
}

func storedID(t *testing.T, store repository.DatasetStore) string {
	t.Helper()

	uploads, err := store.List()
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	return uploads[0].ID
}

func TestUploadDataset(t *testing.T) {
	t.Run("Corpo text/csv é aceito com nome de arquivo padrão", func(t *testing.T) {
		store := repository.NewMemoryDatasetStore()
		handler := newTestRouter(store)

		req := httptest.NewRequest(http.MethodPost, "/v1/datasets", strings.NewReader(sampleCSV))
		req.Header.Set("Content-Type", "text/csv")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var created domain.DatasetUpload
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "upload.csv", created.Filename)
		assert.Equal(t, 2, created.RowCount)

		stored, err := store.Get(created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 2, stored.Dataset.Len())
	})

	t.Run("Formulário multipart com campo file preserva o nome original", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", "performance-marco.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(sampleCSV))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		store := repository.NewMemoryDatasetStore()
		handler := newTestRouter(store)

		req := httptest.NewRequest(http.MethodPost, "/v1/datasets", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var created domain.DatasetUpload
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "performance-marco.csv", created.Filename)
	})

	t.Run("Arquivo ilegível como tabela responde 422", func(t *testing.T) {
		handler := newTestRouter(repository.NewMemoryDatasetStore())

		req := httptest.NewRequest(http.MethodPost, "/v1/datasets", strings.NewReader(""))
		req.Header.Set("Content-Type", "text/csv")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "DS_002")
	})
}

func TestListDatasets(t *testing.T) {
	store := storeWithUpload(t, sampleCSV)
	handler := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/v1/datasets", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var uploads []domain.DatasetUpload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploads))
	require.Len(t, uploads, 1)
	assert.Equal(t, 2, uploads[0].RowCount)
	assert.WithinDuration(t, time.Now(), uploads[0].UploadedAt, time.Minute)
}

func TestDeleteDataset(t *testing.T) {
	store := storeWithUpload(t, sampleCSV)
	handler := newTestRouter(store)
	id := storedID(t, store)

	req := httptest.NewRequest(http.MethodDelete, "/v1/datasets/"+id, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Segunda remoção do mesmo ID responde 404
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/datasets/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "DS_001")
}

func TestGetValidationReport(t *testing.T) {
	t.Run("Dataset válido produz relatório seguro", func(t *testing.T) {
		store := storeWithUpload(t, sampleCSV)
		handler := newTestRouter(store)
		id := storedID(t, store)

		req := httptest.NewRequest(http.MethodGet, "/v1/datasets/"+id+"/validation", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var report domain.ValidationReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, 2, report.Valid)
		assert.True(t, report.SafeToProceed)
	})

	t.Run("Dataset com problema lista os erros por linha", func(t *testing.T) {
		invalidCSV := "date,campaign_name,adset_name,amount_spent\n" +
			"2024-03-04,Campanha A,Conjunto 1,-10\n"

		store := storeWithUpload(t, invalidCSV)
		handler := newTestRouter(store)
		id := storedID(t, store)

		req := httptest.NewRequest(http.MethodGet, "/v1/datasets/"+id+"/validation", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var report domain.ValidationReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.False(t, report.SafeToProceed)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, 1, report.Errors[0].Row)
		assert.Equal(t, "amount_spent", report.Errors[0].Field)
		assert.Equal(t, domain.ReasonConstraintViolation, report.Errors[0].Reason)
	})

	t.Run("Dataset inexistente responde 404", func(t *testing.T) {
		handler := newTestRouter(repository.NewMemoryDatasetStore())

		req := httptest.NewRequest(http.MethodGet, "/v1/datasets/nao-existe/validation", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetDatasetMetrics(t *testing.T) {
	t.Run("Agregação completa do dataset armazenado", func(t *testing.T) {
		store := storeWithUpload(t, sampleCSV)
		handler := newTestRouter(store)
		id := storedID(t, store)

		req := httptest.NewRequest(http.MethodGet, "/v1/datasets/"+id+"/metrics", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var metrics domain.AggregatedMetrics
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
		assert.Equal(t, 150.0, metrics.KPIs.TotalSpend)
		assert.Equal(t, 4, metrics.KPIs.TotalConversions)
		require.NotNil(t, metrics.KPIs.CPA)
		assert.InDelta(t, 37.5, *metrics.KPIs.CPA, 0.001)
		assert.Len(t, metrics.ByWeekday, 7)
		assert.Len(t, metrics.ByAdSet, 2)
	})

	t.Run("Parâmetros objective e top são repassados à agregação", func(t *testing.T) {
		store := storeWithUpload(t, sampleCSV)
		handler := newTestRouter(store)
		id := storedID(t, store)

		req := httptest.NewRequest(http.MethodGet, "/v1/datasets/"+id+"/metrics?objective=LEADS&top=1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var metrics domain.AggregatedMetrics
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
		assert.Len(t, metrics.ByAdSet, 2)
		assert.Len(t, metrics.TopAdSets, 1)
	})

	t.Run("Parâmetro top inválido responde 400", func(t *testing.T) {
		store := storeWithUpload(t, sampleCSV)
		handler := newTestRouter(store)
		id := storedID(t, store)

		req := httptest.NewRequest(http.MethodGet, "/v1/datasets/"+id+"/metrics?top=0", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
