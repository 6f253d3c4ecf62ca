package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv with empty values keeps defaults while isolating the test
	// from the ambient environment.
	t.Setenv("PORT", "")
	t.Setenv("SQLITE_DB_PATH", "")
	t.Setenv("DATA_BACKEND", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("default port: got %s", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Fatalf("default backend: got %s", cfg.DataBackend)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("default log level: got %s", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DataBackend != "memory" || cfg.LogLevel != "debug" {
		t.Fatalf("env not honored: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Port:         "8081",
		SQLiteDBPath: filepath.Join(t.TempDir(), "contas.db"),
		DataBackend:  "sqlite",
		LogLevel:     "info",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"non-numeric port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"unknown backend", func(c *Config) { c.DataBackend = "postgres" }, "invalid data backend"},
		{"empty sqlite path", func(c *Config) { c.SQLiteDBPath = "" }, "database path cannot be empty"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log level"},
	}
	for _, tc := range cases {
		cfg := *valid
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q missing %q", tc.name, err, tc.want)
		}
	}
}

func TestValidateMemoryBackendIgnoresDBPath(t *testing.T) {
	cfg := &Config{Port: "8081", DataBackend: "memory", LogLevel: "info"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory backend should not require db path: %v", err)
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for name, want := range cases {
		cfg := &Config{LogLevel: name}
		got, err := cfg.SlogLevel()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != want {
			t.Fatalf("%s: got %v", name, got)
		}
	}
	if _, err := (&Config{LogLevel: "loud"}).SlogLevel(); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
