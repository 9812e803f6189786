package handler

import (
	"io"
	"mime"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ad-performance-api/infrastructure/dataset"
	"github.com/vfg2006/ad-performance-api/infrastructure/repository"
	"github.com/vfg2006/ad-performance-api/internal/domain"
	"github.com/vfg2006/ad-performance-api/pkg/apiErrors"
	"github.com/vfg2006/ad-performance-api/pkg/log"
	"github.com/vfg2006/ad-performance-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// respondJSON serializa a resposta e loga falhas de encoding
func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("failed to encode response")
	}
}

// UploadDataset recebe um CSV (multipart "file" ou corpo text/csv), o
// materializa como dataset e o guarda em memória sob um ID curto
func UploadDataset(store repository.DatasetStore, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		reader, filename, err := uploadReader(w, r, maxBytes)
		if err != nil {
			logger.WithError(err).Warn("datasets: unable to read upload content")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Não foi possível ler o arquivo enviado", nil)
			return
		}
		defer reader.Close()

		ds, err := dataset.ParseCSV(reader, filename)
		if err != nil {
			if dataset.IsUnreadable(err) {
				logger.WithError(err).Warn("datasets: upload is not readable as a table")
				apiErrors.WriteError(w, apiErrors.ErrUnreadableUpload, err.Error(), nil)
				return
			}

			logger.WithError(err).Error("datasets: unexpected parse failure")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar o arquivo", nil)
			return
		}

		id, err := utils.GenerateID()
		if err != nil {
			logger.WithError(err).Error("datasets: failed to generate upload ID")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao registrar o upload", nil)
			return
		}

		upload := &domain.DatasetUpload{
			ID:         id,
			Filename:   filename,
			RowCount:   ds.Len(),
			UploadedAt: time.Now(),
			Dataset:    ds,
		}

		if err := store.Save(upload); err != nil {
			logger.WithError(err).Error("datasets: failed to store upload")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao registrar o upload", nil)
			return
		}

		logger.WithFields(log.Fields{
			"dataset_id":   upload.ID,
			"dataset_rows": upload.RowCount,
		}).Info("datasets: upload stored")

		respondJSON(w, r, http.StatusCreated, upload)
	})
}

// uploadReader extrai o conteúdo do upload: formulário multipart com campo
// "file" ou o próprio corpo da requisição para text/csv
func uploadReader(w http.ResponseWriter, r *http.Request, maxBytes int64) (io.ReadCloser, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", err
		}
		return file, header.Filename, nil
	}

	return r.Body, "upload.csv", nil
}

// ListDatasets lista os uploads em memória, do mais recente para o mais antigo
func ListDatasets(store repository.DatasetStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		uploads, err := store.List()
		if err != nil {
			logger.WithError(err).Error("datasets: failed to list uploads")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar uploads", nil)
			return
		}

		respondJSON(w, r, http.StatusOK, uploads)
	})
}

// DeleteDataset descarta um upload da memória
func DeleteDataset(store repository.DatasetStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		removed, err := store.Delete(id)
		if err != nil {
			logger.WithError(err).WithField("dataset_id", id).Error("datasets: failed to delete upload")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao remover upload", nil)
			return
		}

		if !removed {
			apiErrors.WriteError(w, apiErrors.ErrDatasetNotFound, "Dataset não encontrado", nil)
			return
		}

		logger.WithField("dataset_id", id).Info("datasets: upload deleted")
		w.WriteHeader(http.StatusNoContent)
	})
}
