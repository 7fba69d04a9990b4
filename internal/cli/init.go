// Package cli provides common initialization for the command entry
// point: env loading, logging, configuration, and session-store
// selection.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Tosmel2/Monivoza/internal/config"
	"github.com/Tosmel2/Monivoza/internal/log"
	"github.com/Tosmel2/Monivoza/internal/session"
	"github.com/Tosmel2/Monivoza/internal/storage"
)

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging and sets it as the
// default.
func SetupLogger(cfg *config.Config) *log.Logger {
	logger := log.New(log.Config{Level: cfg.LogLevel, Component: log.ComponentApp})
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it, exiting
// the process on failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

// OpenSessionStore selects and opens the configured session backend.
// The returned cleanup releases backend resources and is safe to defer.
func OpenSessionStore(cfg *config.Config, logger *log.Logger) (session.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.SessionBackend {
	case "sqlite":
		store, err := storage.NewSQLiteSessionStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, noop, fmt.Errorf("initialize sqlite session store: %w", err)
		}
		logger.Debug("session store ready", log.FieldBackend, "sqlite", "path", cfg.SQLiteDBPath)
		return store, store.Close, nil
	case "memory":
		logger.Debug("session store ready", log.FieldBackend, "memory")
		return session.NewMemoryStore(), noop, nil
	default:
		logger.Debug("session store ready", log.FieldBackend, "file", "path", cfg.SessionFilePath)
		return session.NewFileStore(cfg.SessionFilePath), noop, nil
	}
}
