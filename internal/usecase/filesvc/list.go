package filesvc

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Stats: сводка по каталогу загрузок и индексу.
type Stats struct {
	Files      int   `json:"files"`
	TotalBytes int64 `json:"total_bytes"`
	Keys       int   `json:"keys"`
}

// List возвращает имена сохранённых файлов; временные файлы незавершённых загрузок пропускаются.
func (s *Files) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.UploadDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || isTemp(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Stats обходит каталог загрузок и суммирует размеры файлов.
func (s *Files) Stats(_ context.Context) (Stats, error) {
	var st Stats
	err := filepath.WalkDir(s.UploadDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || isTemp(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		st.Files++
		st.TotalBytes += info.Size()
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Stats{}, err
	}

	st.Keys = s.Index.Len()
	return st, nil
}

func isTemp(name string) bool {
	return strings.HasPrefix(name, tempPrefix)
}
