package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultAPIBaseURL is the production backend. Local development
// typically points API_BASE_URL at a dev proxy instead.
const DefaultAPIBaseURL = "https://monivoza.onrender.com"

type Config struct {
	// Backend API
	APIBaseURL string
	APITimeout time.Duration

	// Session persistence
	SessionBackend  string
	SessionFilePath string
	SQLiteDBPath    string

	// Logging
	LogLevel slog.Level
}

func Load() *Config {
	cfg := &Config{
		APIBaseURL: getEnv("API_BASE_URL", DefaultAPIBaseURL),
		APITimeout: getEnvDuration("API_TIMEOUT", 30*time.Second),

		SessionBackend:  getEnv("SESSION_BACKEND", "file"),
		SessionFilePath: getEnv("SESSION_FILE_PATH", defaultSessionFilePath()),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", defaultSQLiteDBPath()),

		LogLevel: getEnvLogLevel("LOG_LEVEL", slog.LevelInfo),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate API base URL
	if c.APIBaseURL == "" {
		errors = append(errors, "API base URL cannot be empty")
	} else if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	// Validate timeout
	if c.APITimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at least 1 second", c.APITimeout))
	} else if c.APITimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at most 5 minutes", c.APITimeout))
	}

	// Validate session backend
	validBackends := []string{"file", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.SessionBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid session backend '%s': must be one of %v", c.SessionBackend, validBackends))
	}

	// Validate file backend path
	if c.SessionBackend == "file" {
		if c.SessionFilePath == "" {
			errors = append(errors, "session file path cannot be empty when using file backend")
		} else if err := ensureParentDir(c.SessionFilePath); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create session directory for '%s': %v", c.SessionFilePath, err))
		}
	}

	// Validate SQLite backend path
	if c.SessionBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureParentDir(c.SQLiteDBPath); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create SQLite database directory for '%s': %v", c.SQLiteDBPath, err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0700)
	}
	return nil
}

func defaultSessionFilePath() string {
	return filepath.Join(stateDir(), "session.json")
}

func defaultSQLiteDBPath() string {
	return filepath.Join(stateDir(), "monivoza.db")
}

func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".monivoza"
	}
	return filepath.Join(home, ".monivoza")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvLogLevel(key string, defaultValue slog.Level) slog.Level {
	switch strings.ToLower(os.Getenv(key)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return defaultValue
	}
}
