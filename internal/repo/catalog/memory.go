package catalog

import (
	"context"
	"sync"

	"github.com/sir_venger/filedrop/internal/models"
)

// MemoryStore хранит записи о загрузках только в оперативной памяти.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.FileRecord
}

// NewMemoryStore создаёт пустое in-memory хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]models.FileRecord{}}
}

// Get возвращает запись по ключу или models.ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, key string) (models.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return models.FileRecord{}, models.ErrNotFound
	}
	return rec, nil
}

// Save записывает (или обновляет) запись целиком.
func (s *MemoryStore) Save(_ context.Context, rec models.FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Key] = rec
	return nil
}

// Close ничего не делает, нужен для единообразия с PGStore.
func (s *MemoryStore) Close() {}
