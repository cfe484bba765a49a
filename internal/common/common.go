// Package common содержит общие для бинарников вещи: версию сборки и настройку логгера.
package common

import (
	"io"
	"log/slog"
	"os"
)

const PackageName = "github.com/sir_venger/filedrop"

// Version проставляется при сборке через -ldflags.
var Version = "dev"

// LoggingOpts: параметры логгера.
type LoggingOpts struct {
	Debug   bool
	JSON    bool
	Service string
	Version string
	Output  io.Writer
}

// SetupLogger собирает slog-логгер с уровнем, форматом и тегами service/version.
func SetupLogger(opts *LoggingOpts) *slog.Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.Service != "" {
		logger = logger.With("service", opts.Service)
	}
	if opts.Version != "" {
		logger = logger.With("version", opts.Version)
	}
	return logger
}
