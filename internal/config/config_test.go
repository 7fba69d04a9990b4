package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid file backend config",
			config: Config{
				APIBaseURL:      "https://monivoza.onrender.com",
				APITimeout:      30 * time.Second,
				SessionBackend:  "file",
				SessionFilePath: filepath.Join(tmp, "session.json"),
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				APIBaseURL:     "http://localhost:8080",
				APITimeout:     10 * time.Second,
				SessionBackend: "sqlite",
				SQLiteDBPath:   filepath.Join(tmp, "state", "monivoza.db"),
			},
			wantErr: false,
		},
		{
			name: "empty base URL",
			config: Config{
				APITimeout:     30 * time.Second,
				SessionBackend: "memory",
			},
			wantErr:     true,
			errorString: "API base URL cannot be empty",
		},
		{
			name: "bad base URL scheme",
			config: Config{
				APIBaseURL:     "ftp://example.com",
				APITimeout:     30 * time.Second,
				SessionBackend: "memory",
			},
			wantErr:     true,
			errorString: "must be 'http' or 'https'",
		},
		{
			name: "timeout too small",
			config: Config{
				APIBaseURL:     "https://example.com",
				APITimeout:     time.Millisecond,
				SessionBackend: "memory",
			},
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name: "unknown session backend",
			config: Config{
				APIBaseURL:     "https://example.com",
				APITimeout:     30 * time.Second,
				SessionBackend: "redis",
			},
			wantErr:     true,
			errorString: "invalid session backend 'redis'",
		},
		{
			name: "file backend without path",
			config: Config{
				APIBaseURL:     "https://example.com",
				APITimeout:     30 * time.Second,
				SessionBackend: "file",
			},
			wantErr:     true,
			errorString: "session file path cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"API_BASE_URL", "API_TIMEOUT", "SESSION_BACKEND", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.SessionBackend != "file" {
		t.Errorf("SessionBackend = %q", cfg.SessionBackend)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Errorf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:9999")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:9999" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Errorf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.SessionBackend != "memory" {
		t.Errorf("SessionBackend = %q", cfg.SessionBackend)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}
