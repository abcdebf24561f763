// Package main is the entry point for the grocery list API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vyrodovalexey/grocerylist/internal/blob"
	"github.com/vyrodovalexey/grocerylist/internal/catalog"
	"github.com/vyrodovalexey/grocerylist/internal/config"
	"github.com/vyrodovalexey/grocerylist/internal/server"
	"github.com/vyrodovalexey/grocerylist/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use a basic logger for startup errors
		basicLogger, _ := zap.NewProduction()
		basicLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		basicLogger, _ := zap.NewProduction()
		basicLogger.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("configuration loaded",
		zap.Int("server_port", cfg.ServerPort),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("shutdown_timeout", cfg.ShutdownTimeout),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
		zap.String("storage_backend", cfg.StorageBackend),
		zap.String("storage_path", cfg.StoragePath),
		zap.String("presets_path", cfg.PresetsPath),
	)

	blobs, err := blob.Open(cfg.StorageBackend, cfg.StoragePath)
	if err != nil {
		logger.Error("failed to open storage", zap.Error(err))
		return 1
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
	}()

	presets, err := loadCatalog(cfg.PresetsPath, logger)
	if err != nil {
		logger.Error("failed to load preset catalog", zap.Error(err))
		return 1
	}

	registry := store.NewRegistry(blobs, logger)
	srv := server.New(cfg, logger, registry, presets)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	// Wait for shutdown signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", zap.Error(err))
		return 1
	case sig := <-shutdown:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			return 1
		}
	}

	logger.Info("server stopped")
	return 0
}

// loadCatalog returns the embedded preset catalog, or the one at path when set.
func loadCatalog(path string, logger *zap.Logger) (*catalog.Catalog, error) {
	var (
		presets *catalog.Catalog
		err     error
	)
	if path == "" {
		presets, err = catalog.Default()
	} else {
		presets, err = catalog.LoadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading presets: %w", err)
	}

	if skipped := presets.Skipped(); len(skipped) > 0 {
		logger.Warn("malformed presets skipped", zap.Strings("slugs", skipped))
	}
	logger.Info("preset catalog loaded", zap.Int("presets", presets.Len()))

	return presets, nil
}

// initLogger initializes a zap logger with the specified log level.
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}
