// Package main is the entry point for dungeonsprout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeonsprout/internal/config"
	"github.com/samdwyer/dungeonsprout/internal/game"
	"github.com/samdwyer/dungeonsprout/internal/gamedata"
	"github.com/samdwyer/dungeonsprout/internal/logger"
	"github.com/samdwyer/dungeonsprout/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath, preset string
	var listPresets bool
	flag.StringVar(&configPath, "config", config.DefaultFile, "Path to the YAML config file")
	flag.StringVar(&preset, "preset", "", "L-system preset to grow (overrides the config file)")
	flag.BoolVar(&listPresets, "list", false, "List the built-in presets and exit")
	flag.Parse()

	// Local development settings (ROOT_DIR, LOG_LEVEL, OTEL_*); not fatal when absent.
	envErr := godotenv.Load()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	if preset != "" {
		cfg.Tree.Preset = preset
	}

	logOut, closeLog, err := logger.OpenFile(cfg.Path(cfg.Log.File))
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		return 1
	}
	defer closeLog()
	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logOut})

	if envErr != nil {
		logger.Log.Debugf(".env file not loaded: %v", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Init(ctx, cfg.Telemetry.Enabled)
	if err != nil {
		logger.Log.WithError(err).Warn("telemetry setup failed, running without traces")
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Log.WithError(err).Error("telemetry shutdown failed")
		}
	}()

	presets, err := gamedata.LoadPresetRegistry(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("failed to load presets")
		fmt.Fprintf(os.Stderr, "dungeonsprout: %v\n", err)
		return 1
	}

	if listPresets {
		for _, p := range presets.All() {
			fmt.Printf("%-20s %s\n", p.ID, p.Name)
		}
		return 0
	}

	logger.Log.WithField("preset", cfg.Tree.Preset).Info("starting dungeonsprout")

	g, err := game.New(ctx, cfg, presets)
	if err != nil {
		logger.Log.WithError(err).Error("failed to initialize game")
		fmt.Fprintf(os.Stderr, "dungeonsprout: %v\n", err)
		return 1
	}

	if err := g.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("game error")
		fmt.Fprintf(os.Stderr, "dungeonsprout: %v\n", err)
		return 1
	}
	logger.Log.Info("done")
	return 0
}
