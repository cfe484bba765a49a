package filehttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sir_venger/filedrop/internal/config"
	"github.com/sir_venger/filedrop/internal/registry"
	"github.com/sir_venger/filedrop/internal/repo/catalog"
	"github.com/sir_venger/filedrop/internal/usecase/filesvc"
	"github.com/sir_venger/filedrop/pkg/filedropproto"
	"go.uber.org/atomic"
)

// Options: параметры HTTP-слоя, не относящиеся к хранению.
type Options struct {
	Log            *slog.Logger
	MaxUploadBytes int64
	EnablePprof    bool
	DrainDuration  time.Duration
	GC             filesvc.SweepOptions
}

type Server struct {
	FilesService filesvc.Service
	Cfg          *config.Config

	opts    Options
	log     *slog.Logger
	isReady atomic.Bool
	closeFn func()
}

// New собирает сервер поверх готового файлового сервиса.
func New(files filesvc.Service, opts Options) *Server {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}

	srv := &Server{
		FilesService: files,
		opts:         opts,
		log:          opts.Log,
		closeFn:      func() {},
	}
	srv.isReady.Store(true)
	return srv
}

// NewServer конструктор: поднимает реестр, каталог и файловый сервис по конфигурации.
func NewServer(ctx context.Context, cfg *config.Config, opts Options) (http.Handler, *Server, error) {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}

	files, store, err := buildFileService(ctx, cfg, opts.Log)
	if err != nil {
		return nil, nil, err
	}

	opts.MaxUploadBytes = cfg.MaxUploadBytes
	opts.GC = filesvc.SweepOptions{
		TTL:                cfg.GC.TTL(),
		RemoveUnregistered: cfg.GC.RemoveUnregistered,
	}

	srv := New(files, opts)
	srv.Cfg = cfg
	srv.closeFn = store.Close

	return srv.Routes(), srv, nil
}

func buildFileService(ctx context.Context, cfg *config.Config, log *slog.Logger) (*filesvc.Files, catalog.Store, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create upload dir: %w", err)
	}

	store, err := catalog.Open(ctx, cfg.MetaDSN)
	if err != nil {
		return nil, nil, err
	}

	deps := filesvc.Deps{
		Index:     registry.New(),
		Catalog:   store,
		Keys:      filesvc.UUIDKeys{},
		UploadDir: cfg.UploadDir,
		Naming:    filesvc.Naming(cfg.Naming),
		Log:       log,
	}
	if cfg.Tamper.Probability > 0 {
		log.Warn("Upload tampering enabled", "probability", cfg.Tamper.Probability)
		deps.Tamper = filesvc.NewCoinTamper(cfg.Tamper.Probability, cfg.Tamper.Payload)
	}

	return filesvc.New(deps), store, nil
}

// Routes регистрирует обработчики.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.httpLogger)

	r.Get(filedropproto.PathHealthCheck, s.healthCheck)
	r.Get(filedropproto.PathList, s.listUploads)
	r.Get(filedropproto.PathDownload, s.download)
	r.Head(filedropproto.PathDownload, s.inspect)
	r.Post(filedropproto.PathUpload, s.upload)

	r.Get(filedropproto.PathHealth, s.health)
	r.Get("/livez", s.handleLivenessCheck)
	r.Get("/readyz", s.handleReadinessCheck)
	r.Get("/drain", s.handleDrain)
	r.Get("/undrain", s.handleUndrain)
	r.Post(filedropproto.PathAdminGC, s.gcOnce)

	if s.opts.EnablePprof {
		s.log.Info("pprof API enabled")
		r.Mount("/debug", middleware.Profiler())
	}

	r.NotFound(s.notFound)
	return r
}

func (s *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(s.log, next)
}

// Drain снимает флаг готовности и ждёт, пока балансировщик это заметит.
func (s *Server) Drain(ctx context.Context) {
	if !s.isReady.Swap(false) {
		return
	}
	s.log.Info("Server marked as not ready", "drainDuration", s.opts.DrainDuration)

	select {
	case <-time.After(s.opts.DrainDuration):
	case <-ctx.Done():
	}
}

// GCOptions возвращает параметры очистки, с которыми сервер был собран.
func (s *Server) GCOptions() filesvc.SweepOptions {
	return s.opts.GC
}

// Close освобождает ресурсы каталога.
func (s *Server) Close() {
	s.closeFn()
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.log.Info("404 Not Found", "method", r.Method, "path", r.URL.Path)
	http.NotFound(w, r)
}
