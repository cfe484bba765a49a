package filehttp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sir_venger/filedrop/internal/usecase/filesvc"
)

const manualGCTTL = 24 * time.Hour

// gcOnce вручную запускает очистку каталога загрузок.
func (s *Server) gcOnce(w http.ResponseWriter, r *http.Request) {
	opts := s.opts.GC
	if opts.TTL <= 0 {
		opts.TTL = manualGCTTL
	}

	removed, err := s.FilesService.Sweep(r.Context(), opts)
	if err != nil {
		s.log.Error("Manual GC failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.log.Info("Manual GC completed", "removed", removed)
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// RunGC периодически чистит каталог, пока не отменён ctx. Нулевые ttl или интервал выключают GC.
func RunGC(ctx context.Context, files filesvc.Service, opts filesvc.SweepOptions, every time.Duration, log *slog.Logger) error {
	if every <= 0 || opts.TTL <= 0 {
		return nil
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := files.Sweep(ctx, opts)
			if err != nil {
				log.Warn("GC sweep failed", "err", err)
				continue
			}
			if removed > 0 {
				log.Info("GC sweep completed", "removed", removed)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
