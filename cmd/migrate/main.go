package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sir_venger/filedrop/cmd/flags"
	"github.com/sir_venger/filedrop/internal/config"
	"github.com/sir_venger/filedrop/internal/repo/catalog"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "Apply upload catalog migrations",
		Flags: append([]cli.Flag{
			flags.ConfigFlag,
			&cli.StringFlag{
				Name:    "meta-dsn",
				EnvVars: []string{"META_DSN"},
				Usage:   "catalog DSN (overrides config)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "migration timeout",
			},
		}, flags.LogFlags...),
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
		return err
	}
	if cCtx.IsSet("meta-dsn") {
		cfg.MetaDSN = cCtx.String("meta-dsn")
	}

	dsn := strings.TrimSpace(cfg.MetaDSN)
	if catalog.IsMemoryDSN(dsn) {
		logger.Info("memory catalog selected, skipping migrations")
		return nil
	}

	ctx, cancel := context.WithTimeout(cCtx.Context, cCtx.Duration("timeout"))
	defer cancel()

	if err := catalog.ApplyMigrations(ctx, dsn); err != nil {
		logger.Error("Migrations failed", "err", err)
		return err
	}

	logger.Info("migrations applied")
	return nil
}
