package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"complaintdesk/internal/config"
	"complaintdesk/internal/logging"
)

// GlobalFlags returns the flags shared by every subcommand.
func GlobalFlags(flags *Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to a YAML config file",
			Sources:     cli.EnvVars(config.EnvPrefix + "_CONFIG"),
			Destination: &flags.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "dotenv file to load (default: ./.env when present)",
			Destination: &flags.EnvFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Destination: &flags.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (console, json)",
			Destination: &flags.LogFormat,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "also write logs to this file",
			Destination: &flags.LogFile,
		},
	}
}

// Before loads configuration, applies flag overrides and sets up logging.
// Flags win over the environment, which wins over the config file.
func Before(flags *Flags) cli.BeforeFunc {
	return func(ctx context.Context, c *cli.Command) (context.Context, error) {
		cfg, err := config.Load(config.Options{File: flags.ConfigPath, EnvFile: flags.EnvFile})
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}

		if c.IsSet("log-level") {
			cfg.Log.Level = flags.LogLevel
		}
		if c.IsSet("log-format") {
			cfg.Log.Format = flags.LogFormat
		}
		if c.IsSet("log-file") {
			cfg.Log.File = flags.LogFile
		}

		logger, closer, err := logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
		if err != nil {
			return ctx, err
		}

		flags.Config = cfg
		flags.Logger = logger
		flags.logCloser = closer
		return ctx, nil
	}
}
