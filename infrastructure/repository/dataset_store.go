package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/ad-performance-api/internal/domain"
)

//go:generate mockgen -source=dataset_store.go -destination=mocks/dataset_store.go -package=mocks

// DatasetStore guarda uploads de dataset durante a sessão do processo.
// Nenhuma implementação persiste dados entre execuções: o armazenamento é
// exclusivamente em memória, cada upload com dono próprio por requisição.
type DatasetStore interface {
	Save(upload *domain.DatasetUpload) error
	Get(id string) (*domain.DatasetUpload, error)
	List() ([]*domain.DatasetUpload, error)
	Delete(id string) (bool, error)
	DeleteOlderThan(cutoff time.Time) (int, error)
}

type memoryDatasetStore struct {
	mu      sync.RWMutex
	uploads map[string]*domain.DatasetUpload
}

// NewMemoryDatasetStore cria um armazenamento de datasets em memória
func NewMemoryDatasetStore() DatasetStore {
	return &memoryDatasetStore{
		uploads: make(map[string]*domain.DatasetUpload),
	}
}

func (s *memoryDatasetStore) Save(upload *domain.DatasetUpload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads[upload.ID] = upload
	return nil
}

// Get retorna nil sem erro quando o upload não existe
func (s *memoryDatasetStore) Get(id string) (*domain.DatasetUpload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.uploads[id], nil
}

// List retorna os uploads do mais recente para o mais antigo
func (s *memoryDatasetStore) List() ([]*domain.DatasetUpload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uploads := make([]*domain.DatasetUpload, 0, len(s.uploads))
	for _, upload := range s.uploads {
		uploads = append(uploads, upload)
	}

	sort.Slice(uploads, func(i, j int) bool {
		if !uploads[i].UploadedAt.Equal(uploads[j].UploadedAt) {
			return uploads[i].UploadedAt.After(uploads[j].UploadedAt)
		}
		return uploads[i].ID < uploads[j].ID
	})

	return uploads, nil
}

func (s *memoryDatasetStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.uploads[id]; !exists {
		return false, nil
	}

	delete(s.uploads, id)
	return true, nil
}

// DeleteOlderThan remove uploads anteriores ao corte e retorna quantos foram
// removidos. Usado pelo job de limpeza por tempo de retenção.
func (s *memoryDatasetStore) DeleteOlderThan(cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, upload := range s.uploads {
		if upload.UploadedAt.Before(cutoff) {
			delete(s.uploads, id)
			removed++
		}
	}

	return removed, nil
}
