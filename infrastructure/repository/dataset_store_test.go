package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-performance-api/internal/domain"
)

func upload(id string, uploadedAt time.Time) *domain.DatasetUpload {
	return &domain.DatasetUpload{
		ID:         id,
		Filename:   id + ".csv",
		UploadedAt: uploadedAt,
	}
}

func TestMemoryDatasetStore_SaveGetDelete(t *testing.T) {
	store := NewMemoryDatasetStore()
	now := time.Now()

	require.NoError(t, store.Save(upload("ds1", now)))

	found, err := store.Get("ds1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "ds1.csv", found.Filename)

	// Upload inexistente retorna nil sem erro
	missing, err := store.Get("nao-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := store.Delete("ds1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete("ds1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryDatasetStore_ListOrdenadaPorData(t *testing.T) {
	store := NewMemoryDatasetStore()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(upload("antigo", base)))
	require.NoError(t, store.Save(upload("recente", base.Add(2*time.Hour))))
	require.NoError(t, store.Save(upload("intermediario", base.Add(time.Hour))))

	uploads, err := store.List()
	require.NoError(t, err)
	require.Len(t, uploads, 3)

	assert.Equal(t, "recente", uploads[0].ID)
	assert.Equal(t, "intermediario", uploads[1].ID)
	assert.Equal(t, "antigo", uploads[2].ID)
}

func TestMemoryDatasetStore_DeleteOlderThan(t *testing.T) {
	store := NewMemoryDatasetStore()
	now := time.Now()

	require.NoError(t, store.Save(upload("expirado1", now.Add(-48*time.Hour))))
	require.NoError(t, store.Save(upload("expirado2", now.Add(-25*time.Hour))))
	require.NoError(t, store.Save(upload("vigente", now.Add(-time.Hour))))

	removed, err := store.DeleteOlderThan(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	uploads, err := store.List()
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "vigente", uploads[0].ID)
}
