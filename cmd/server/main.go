package main

import (
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/api"
	"github.com/yourname/cadence/internal/auth"
	"github.com/yourname/cadence/internal/config"
	"github.com/yourname/cadence/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	repos, err := newRepositories(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.AuthToken, repos.Users, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	app := api.NewServer(logger, cfg, repos)
	r := api.NewRouter(app, provider, cfg)

	logger.Infof("server listening on :%s (day anchor %d min)", cfg.Port, cfg.DayAnchorMinutes)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}

func newLogger(cfg *config.Config) (internal.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	var zc zap.Config
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	z, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return internal.NewZapLogger(z.Sugar()), nil
}

func newRepositories(cfg *config.Config, logger internal.Logger) (storage.Repositories, error) {
	if cfg.DBType == "postgres" {
		return storage.NewPostgresRepositories(cfg.DBDSN, logger)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FileEvents), 0755); err != nil {
		return storage.Repositories{}, err
	}
	return storage.NewFileRepositories(cfg.FileEvents, cfg.FileSettings, cfg.FileUsers, logger)
}
