package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/goodbuddi/internal/config"
	"github.com/sandeepkv93/goodbuddi/internal/logging"
	"github.com/sandeepkv93/goodbuddi/internal/planner"
	"github.com/sandeepkv93/goodbuddi/internal/storage"
	"go.uber.org/zap"
)

type globalFlags struct {
	configPath string
	envFile    string
}

// appEnv holds what every command needs once config is loaded.
type appEnv struct {
	cfg     *config.Config
	logger  *zap.Logger
	repo    *storage.SQLiteRepository
	planner *planner.Service
}

// openEnv loads config, builds the logger and opens the database. The TUI
// passes toFile so log lines stay off the terminal it draws on.
func openEnv(flags *globalFlags, toFile bool) (*appEnv, error) {
	cfg, err := config.Load(flags.configPath, flags.envFile)
	if err != nil {
		return nil, err
	}

	logPath := ""
	if toFile {
		logPath = cfg.Log.File
	}
	logger, err := logging.New(logPath, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		logging.Sync(logger)
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	repo, err := storage.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		logging.Sync(logger)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &appEnv{
		cfg:     cfg,
		logger:  logger,
		repo:    repo,
		planner: planner.NewService(repo, planner.WithLogger(logger)),
	}, nil
}

func (e *appEnv) Close() {
	if err := e.repo.Close(); err != nil {
		e.logger.Warn("db_close_failed", zap.Error(err))
	}
	logging.Sync(e.logger)
}
