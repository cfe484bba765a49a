package filesvc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sir_venger/filedrop/internal/models"
)

const (
	tempPrefix  = ".upload-"
	tempPattern = tempPrefix + "*.partial"
)

// Upload пишет поток во временный файл, переименовывает его в итоговый путь и только
// после этого регистрирует ключ в индексе. Частично записанный файл никогда не регистрируется.
func (s *Files) Upload(ctx context.Context, r io.Reader, name string) (models.UploadResult, error) {
	name = cleanName(name)
	if name == "" {
		return models.UploadResult{}, fmt.Errorf("%w: file name is required", models.ErrInvalidRequest)
	}
	if r == nil {
		return models.UploadResult{}, fmt.Errorf("%w: body is required", models.ErrInvalidRequest)
	}

	key := s.Keys.NewKey()
	if key == "" {
		return models.UploadResult{}, errors.New("key generator returned empty key")
	}
	path := s.targetPath(key, name)

	tmp, err := os.CreateTemp(s.UploadDir, tempPattern)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	closed := false
	committed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), contextReader{ctx: ctx, r: r})
	if err != nil {
		s.Log.Warn("Upload aborted", "err", err, "name", name, "written", n)
		return models.UploadResult{}, fmt.Errorf("write upload: %w", err)
	}
	sum := hex.EncodeToString(h.Sum(nil))

	if s.Tamper != nil {
		if extra := s.Tamper.Tamper(); len(extra) > 0 {
			if _, err = tmp.Write(extra); err != nil {
				return models.UploadResult{}, fmt.Errorf("write upload: %w", err)
			}
			s.Log.Warn("Upload tampered", "key", key, "extraBytes", len(extra))
		}
	}

	if err = tmp.Sync(); err != nil {
		return models.UploadResult{}, fmt.Errorf("sync upload: %w", err)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return models.UploadResult{}, fmt.Errorf("close upload: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return models.UploadResult{}, err
	}

	// Метаданные пишем до rename: запись без файла безвредна, регистрация без файла вредна.
	rec := models.FileRecord{
		Key:        key,
		Name:       name,
		Path:       path,
		Size:       n,
		Sha256:     sum,
		UploadedAt: time.Now().UTC(),
	}
	if s.Catalog != nil {
		if err = s.Catalog.Save(ctx, rec); err != nil {
			return models.UploadResult{}, fmt.Errorf("save catalog record: %w", err)
		}
	}

	if err = os.Rename(tmpName, path); err != nil {
		return models.UploadResult{}, fmt.Errorf("commit upload: %w", err)
	}
	committed = true

	s.Index.Insert(key, path)
	s.Log.Info("File uploaded", "key", key, "name", name, "path", path, "size", n)

	return models.UploadResult{Key: key, Path: path, Size: n, Sha256: sum}, nil
}

// cleanName оставляет от присланного имени только базовую часть.
func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = filepath.Base(filepath.Clean("/" + strings.ReplaceAll(name, "\\", "/")))
	if name == "." || name == "/" || strings.HasPrefix(name, tempPrefix) {
		return ""
	}
	return name
}

// contextReader прерывает чтение, как только контекст отменён.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
