package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLogLevel(tt.in); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JOURNEYTREE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	// An explicitly named config file must exist.
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}

	t.Setenv("JOURNEYTREE_CONFIG", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider != ProviderScripted {
		t.Errorf("default provider = %q, want %q", cfg.Provider, ProviderScripted)
	}
	if cfg.JourneyMonths != 8 {
		t.Errorf("default journey months = %d, want 8", cfg.JourneyMonths)
	}
	if cfg.TimelineEpoch != DefaultEpoch {
		t.Errorf("default epoch = %q, want %q", cfg.TimelineEpoch, DefaultEpoch)
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journeytree.yaml")
	content := "journey_months: 6\nprovider: ollama\nlog_level: DEBUG\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("JOURNEYTREE_CONFIG", path)
	t.Setenv("JOURNEYTREE_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// File overrides defaults.
	if cfg.JourneyMonths != 6 {
		t.Errorf("journey months = %d, want 6 (from file)", cfg.JourneyMonths)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v, want debug (from file)", cfg.LogLevel)
	}

	// Env overrides file.
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("provider = %q, want %q (from env)", cfg.Provider, ProviderOpenAI)
	}
	if cfg.OpenAIAPIKey != "test-key" {
		t.Errorf("api key = %q, want %q", cfg.OpenAIAPIKey, "test-key")
	}
}
