package main

import (
	"fmt"

	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/ops"
	"github.com/jacksmith/daily/internal/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app bundles what every command needs: the medium, the user config and
// an initialized task store.
type app struct {
	storage *storage.Storage
	cfg     *storage.Config
	store   *ops.TaskStore
	log     *zap.Logger
}

// openApp opens the data directory, loads config and the task list.
func openApp() (*app, error) {
	dir := rootDir
	if dir == "" {
		dir = storage.DefaultDir()
	}

	s, err := storage.Open(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}

	color := cfg.Color
	if rootNoColor {
		color = storage.ColorNever
	}
	if err := cli.ConfigureColor(color, out); err != nil {
		return nil, err
	}

	log, err := newLogger(rootVerbose)
	if err != nil {
		return nil, err
	}

	store := ops.NewTaskStore(s, cfg.StoreKey, ops.WithLogger(log))
	store.Initialize()

	log.Debug("opened task list", zap.String("dir", s.DataPath()), zap.String("key", cfg.StoreKey))
	return &app{storage: s, cfg: cfg, store: store, log: log}, nil
}

// close flushes the logger.
func (a *app) close() {
	// Sync on a terminal stderr can fail harmlessly
	_ = a.log.Sync()
}

// newLogger builds a console logger on stderr. Only warnings and errors
// are shown unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = !verbose
	cfg.EncoderConfig.TimeKey = ""

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}
