package filesvc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sir_venger/filedrop/internal/models"
)

// Open находит файл по ключу и открывает его на чтение. Body закрывает вызывающий.
func (s *Files) Open(ctx context.Context, key string) (models.Download, error) {
	path, err := s.resolve(key)
	if err != nil {
		return models.Download{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return models.Download{}, s.openError(key, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return models.Download{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return models.Download{}, fmt.Errorf("%s is not a regular file", path)
	}

	d := s.describe(ctx, key, path, info.Size())
	d.Body = f
	return d, nil
}

// Inspect возвращает метаданные файла без открытия содержимого.
func (s *Files) Inspect(ctx context.Context, key string) (models.Download, error) {
	path, err := s.resolve(key)
	if err != nil {
		return models.Download{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return models.Download{}, s.openError(key, path, err)
	}

	return s.describe(ctx, key, path, info.Size()), nil
}

// resolve переводит ключ в путь; промах по индексу не трогает файловую систему.
func (s *Files) resolve(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: key is required", models.ErrInvalidRequest)
	}

	path, ok := s.Index.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: key %s", models.ErrNotFound, key)
	}
	return path, nil
}

func (s *Files) openError(key, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		s.Log.Error("Registered file is missing on disk", "key", key, "path", path)
		return fmt.Errorf("%w: key %s", models.ErrMissingOnDisk, key)
	}
	s.Log.Error("Failed to open registered file", "err", err, "key", key, "path", path)
	return fmt.Errorf("open %s: %w", path, err)
}

// describe собирает имя и контрольную сумму из каталога; при промахе имя берётся из пути.
func (s *Files) describe(ctx context.Context, key, path string, size int64) models.Download {
	d := models.Download{
		Name: filepath.Base(path),
		Size: size,
	}
	if s.Catalog == nil {
		return d
	}

	rec, err := s.Catalog.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.Log.Warn("Catalog lookup failed", "err", err, "key", key)
		}
		return d
	}
	if rec.Name != "" {
		d.Name = rec.Name
	}
	d.Sha256 = rec.Sha256
	return d
}
