package catalog

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/sir_venger/filedrop/internal/models"
)

// Save записывает (или обновляет) запись о загрузке.
func (s *PGStore) Save(ctx context.Context, rec models.FileRecord) error {
	if strings.TrimSpace(rec.Key) == "" {
		return fmt.Errorf("upload key is empty")
	}

	sqlStr, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(uploadsTable).
		Columns("key", "file_name", "path", "size", "sha256", "uploaded_at").
		Values(rec.Key, rec.Name, rec.Path, rec.Size, rec.Sha256, rec.UploadedAt).
		Suffix(`
			ON CONFLICT (key) DO UPDATE
			SET file_name   = EXCLUDED.file_name,
				path        = EXCLUDED.path,
				size        = EXCLUDED.size,
				sha256      = EXCLUDED.sha256,
				uploaded_at = EXCLUDED.uploaded_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert sql: %w", err)
	}

	if _, err = s.pool.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("exec upsert: %w", err)
	}

	return nil
}
