// Package main is the entry point for gridcaster.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/samdwyer/gridcaster/internal/config"
	"github.com/samdwyer/gridcaster/internal/logging"
	"github.com/samdwyer/gridcaster/internal/telemetry"
	"github.com/samdwyer/gridcaster/internal/ui"
	"github.com/samdwyer/gridcaster/internal/viewer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gridcaster: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Defaults, then .env and GRIDCASTER_* variables, then flags.
	cfg := config.Default()
	if err := cfg.LoadEnv(); err != nil {
		return err
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	if cfg.Telemetry {
		cfg.ApplyOTelEnv()
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// Not fatal; the viewer still works without traces.
			logger.Warn("telemetry setup failed", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	world, err := viewer.LoadWorld(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("layout loaded",
		zap.String("layout", world.Name),
		zap.Int("width", world.Grid.Width()),
		zap.Int("height", world.Grid.Height()),
		zap.String("checksum", fmt.Sprintf("%016x", world.Grid.Checksum())),
	)

	if cfg.Dump {
		return dump(ctx, os.Stdout, cfg, world)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	v, err := viewer.New(cfg, logger, screen, world)
	if err != nil {
		screen.Close()
		return err
	}
	defer v.Close()

	return v.Run(ctx)
}
