/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/lumenlabs/lumen/pkg/collector"
	"github.com/lumenlabs/lumen/pkg/config"
	"github.com/lumenlabs/lumen/pkg/format"
	"github.com/lumenlabs/lumen/pkg/logging"
	"github.com/lumenlabs/lumen/pkg/pull"
	"github.com/lumenlabs/lumen/pkg/version"
)

const name = "lumen"

// New builds the root command.
func New() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Pull interface telemetry from optical transport devices",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version.Version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			discoverCmd(),
			collectCmd(),
		},
	}
}

// Execute runs the root command. It exits 0 on success, including runs
// that find nothing, and 1 on any failure, with the diagnostic on
// stderr.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := New().Run(ctx, os.Args); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// optionsFromCommand assembles the pull options from parsed flags and
// the configuration file.
func optionsFromCommand(cmd *cli.Command) (pull.Options, error) {
	ds, err := config.Load(cmd.String("config"))
	if err != nil {
		return pull.Options{}, err
	}

	outFormat, err := format.ParseFormat(cmd.String("format"))
	if err != nil {
		return pull.Options{}, err
	}

	return pull.Options{
		Target: collector.Target{
			Host: cmd.String("host"),
			Port: int(cmd.Int("port")),
		},
		Credentials: collector.Credentials{
			Username:     cmd.String("username"),
			Password:     cmd.String("password"),
			Community:    cmd.String("community"),
			AuthProtocol: cmd.String("auth-protocol"),
			PrivProtocol: cmd.String("priv-protocol"),
			PrivPassword: cmd.String("priv-password"),
		},
		Datasource: ds,
		Format:     outFormat,
		Timeout:    cmd.Duration("timeout"),
		Out:        os.Stdout,
	}, nil
}
