package flags

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/sir_venger/filedrop/internal/common"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJsonFlag.Name),
		Service: cCtx.String(LogServiceFlag.Name),
		Version: common.Version,
	})

	if cCtx.Bool(LogUidFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

var ConfigFlag = &cli.StringFlag{
	Name:    "config",
	EnvVars: []string{"CONFIG_PATH"},
	Value:   "./config.yaml",
	Usage:   "path to YAML config; missing file means defaults",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}

var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: true,
	Usage: "log debug messages",
}

var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: "filedrop",
	Usage: "add 'service' tag to logs",
}

var LogFlags = []cli.Flag{LogJsonFlag, LogDebugFlag, LogUidFlag, LogServiceFlag}
