// Package catalog хранит метаданные загрузок: исходное имя, размер и SHA-256.
// Каталог не является индексом: поиск файла по ключу идёт через registry.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sir_venger/filedrop/internal/models"
)

const (
	uploadsTable = "uploads"
	memoryScheme = "memory://"
)

// Store: общий интерфейс реализаций каталога.
type Store interface {
	Get(ctx context.Context, key string) (models.FileRecord, error)
	Save(ctx context.Context, rec models.FileRecord) error
	Close()
}

// PGStore сохраняет метаданные в Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore создаёт пул подключений к Postgres.
func NewPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("meta dsn is empty")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open pg pool: %w", err)
	}

	return &PGStore{pool: pool}, nil
}

// Close освобождает подключения пула.
func (s *PGStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// IsMemoryDSN сообщает, выбран ли in-memory каталог.
func IsMemoryDSN(dsn string) bool {
	dsn = strings.TrimSpace(dsn)
	return dsn == "" || strings.HasPrefix(dsn, memoryScheme)
}

// Open выбирает реализацию каталога по DSN: пустой или memory:// означает память, иначе Postgres.
func Open(ctx context.Context, dsn string) (Store, error) {
	if IsMemoryDSN(dsn) {
		return NewMemoryStore(), nil
	}
	return NewPGStore(ctx, dsn)
}
