package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sir_venger/filedrop/cmd/flags"
	"github.com/sir_venger/filedrop/internal/app/filehttp"
	"github.com/sir_venger/filedrop/internal/config"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var serverFlags = []cli.Flag{
	flags.ConfigFlag,
	&cli.StringFlag{
		Name:  "listen-addr",
		Usage: "address to listen on for API (overrides config)",
	},
	&cli.StringFlag{
		Name:  "upload-dir",
		Usage: "directory for uploaded files (overrides config)",
	},
	&cli.StringFlag{
		Name:  "naming",
		Usage: "on-disk file naming: 'key' or 'name' (overrides config)",
	},
	&cli.Int64Flag{
		Name:  "max-upload-bytes",
		Usage: "reject uploads larger than this, 0 for no limit (overrides config)",
	},
	&cli.BoolFlag{
		Name:  "pprof",
		Value: false,
		Usage: "enable pprof debug endpoint",
	},
	&cli.Int64Flag{
		Name:  "drain-seconds",
		Value: 0,
		Usage: "seconds to stay not-ready before shutting down",
	},
}

func main() {
	app := &cli.App{
		Name:   "filedrop",
		Usage:  "Serve file upload/download API backed by local disk",
		Flags:  append(serverFlags, flags.LogFlags...),
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	cfg, err := config.LoadFile(cCtx.String(flags.ConfigFlag.Name))
	if err != nil {
		logger.Error("Failed to load config", "err", err)
		return err
	}
	if cCtx.IsSet("listen-addr") {
		cfg.ListenAddr = cCtx.String("listen-addr")
	}
	if cCtx.IsSet("upload-dir") {
		cfg.UploadDir = cCtx.String("upload-dir")
	}
	if cCtx.IsSet("naming") {
		cfg.Naming = cCtx.String("naming")
	}
	if cCtx.IsSet("max-upload-bytes") {
		cfg.MaxUploadBytes = cCtx.Int64("max-upload-bytes")
	}
	if err = cfg.Validate(); err != nil {
		logger.Error("Invalid config", "err", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, srv, err := filehttp.NewServer(ctx, cfg, filehttp.Options{
		Log:           logger,
		EnablePprof:   cCtx.Bool("pprof"),
		DrainDuration: time.Duration(cCtx.Int64("drain-seconds")) * time.Second,
	})
	if err != nil {
		logger.Error("Failed to create server", "err", err)
		return err
	}
	defer srv.Close()

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", "listenAddress", cfg.ListenAddr, "uploadDir", cfg.UploadDir, "naming", cfg.Naming)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT или падении сервера.
	g.Go(func() error {
		<-gCtx.Done()
		srv.Drain(context.Background())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Graceful HTTP server shutdown failed", "err", err)
			return err
		}
		logger.Info("HTTP server gracefully stopped")
		return nil
	})

	g.Go(func() error {
		return filehttp.RunGC(gCtx, srv.FilesService, srv.GCOptions(), cfg.GC.Interval(), logger)
	})

	return g.Wait()
}
