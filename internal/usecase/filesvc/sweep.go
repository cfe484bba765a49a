package filesvc

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// SweepOptions задаёт правила очистки каталога загрузок.
type SweepOptions struct {
	// Файлы моложе TTL не трогаются.
	TTL time.Duration
	// RemoveUnregistered разрешает удалять устаревшие файлы, которых нет в индексе.
	RemoveUnregistered bool
	Now                time.Time
}

// Sweep удаляет устаревшие временные файлы и, если разрешено, файлы-сироты без ключа.
func (s *Files) Sweep(ctx context.Context, opts SweepOptions) (int, error) {
	if opts.TTL <= 0 {
		return 0, nil
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	entries, err := os.ReadDir(s.UploadDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	var registered map[string]struct{}
	if opts.RemoveUnregistered {
		registered = s.Index.Paths()
	}

	removed := 0
	for _, e := range entries {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if !e.Type().IsRegular() {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < opts.TTL {
			continue
		}

		path := filepath.Join(s.UploadDir, e.Name())
		switch {
		case isTemp(e.Name()):
		case opts.RemoveUnregistered:
			if _, ok := registered[path]; ok {
				continue
			}
		default:
			continue
		}

		if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.Log.Warn("Sweep failed to remove file", "err", err, "path", path)
			continue
		}
		removed++
		s.Log.Debug("Sweep removed file", "path", path)
	}

	return removed, nil
}
