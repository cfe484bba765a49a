package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/sir_venger/filedrop/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "nope")
	require.ErrorIs(t, err, models.ErrNotFound)

	rec := models.FileRecord{
		Key:        "abc",
		Name:       "report.pdf",
		Path:       "uploads/abc",
		Size:       42,
		Sha256:     "deadbeef",
		UploadedAt: time.Unix(1700000000, 0).UTC(),
	}
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	rec.Name = "report-v2.pdf"
	require.NoError(t, s.Save(ctx, rec))
	got, err = s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "report-v2.pdf", got.Name)
}

func TestOpen_MemoryDSN(t *testing.T) {
	for _, dsn := range []string{"", "  ", "memory://", "memory://catalog"} {
		store, err := Open(context.Background(), dsn)
		require.NoError(t, err, dsn)
		assert.IsType(t, &MemoryStore{}, store, dsn)
		store.Close()
	}
}

func TestIsMemoryDSN(t *testing.T) {
	assert.True(t, IsMemoryDSN("memory://"))
	assert.False(t, IsMemoryDSN("postgres://u:p@localhost:5432/filedrop?sslmode=disable"))
}
