package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/sir_venger/filedrop/internal/models"
)

// Get возвращает запись о загрузке по ключу.
func (s *PGStore) Get(ctx context.Context, key string) (models.FileRecord, error) {
	if strings.TrimSpace(key) == "" {
		return models.FileRecord{}, fmt.Errorf("upload key is empty")
	}

	sqlStr, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("file_name", "path", "size", "sha256", "uploaded_at").
		From(uploadsTable).
		Where(sq.Eq{"key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("build select: %w", err)
	}

	var (
		name       string
		path       string
		size       int64
		sha        string
		uploadedAt time.Time
	)
	if err = s.pool.QueryRow(ctx, sqlStr, args...).Scan(&name, &path, &size, &sha, &uploadedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FileRecord{}, models.ErrNotFound
		}
		return models.FileRecord{}, fmt.Errorf("scan upload row: %w", err)
	}

	return models.FileRecord{
		Key:        key,
		Name:       name,
		Path:       path,
		Size:       size,
		Sha256:     sha,
		UploadedAt: uploadedAt,
	}, nil
}
