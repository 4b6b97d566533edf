// Package config loads journeytree configuration from the environment and
// an optional YAML config file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Responder providers.
const (
	ProviderScripted  = "scripted"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
)

// DefaultEpoch is day 1 of the timeline; flat-dialect dates are converted to
// day numbers relative to it.
const DefaultEpoch = "2025-01-01"

// Config holds all configuration values.
type Config struct {
	// Simulation
	DataDir       string `yaml:"data_dir"`
	JourneyMonths int    `yaml:"journey_months"`
	TimelineEpoch string `yaml:"timeline_epoch"`

	// Responder
	Provider        string `yaml:"provider"`
	Model           string `yaml:"model"`
	OllamaHost      string `yaml:"ollama_host"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	BedrockModelID  string `yaml:"bedrock_model_id"`

	// SurrealDB archive
	SurrealDBURL       string `yaml:"surrealdb_url"`
	SurrealDBNamespace string `yaml:"surrealdb_namespace"`
	SurrealDBDatabase  string `yaml:"surrealdb_database"`
	SurrealDBUser      string `yaml:"surrealdb_user"`
	SurrealDBPass      string `yaml:"surrealdb_pass"`
	SurrealDBAuthLevel string `yaml:"surrealdb_auth_level"`

	// Logging
	LogFile      string     `yaml:"log_file"`
	LogLevelName string     `yaml:"log_level"`
	LogLevel     slog.Level `yaml:"-"`
}

// Load reads configuration, lowest precedence first: built-in defaults, the
// YAML config file (JOURNEYTREE_CONFIG, or journeytree.yaml if present),
// then environment variables.
func Load() (Config, error) {
	cfg := defaults()

	path := os.Getenv("JOURNEYTREE_CONFIG")
	optional := false
	if path == "" {
		path = "journeytree.yaml"
		optional = true
	}
	if err := cfg.applyFile(path, optional); err != nil {
		return Config{}, err
	}

	cfg.applyEnv()
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	return cfg, nil
}

func defaults() Config {
	return Config{
		DataDir:       "data",
		JourneyMonths: 8,
		TimelineEpoch: DefaultEpoch,

		Provider:       ProviderScripted,
		Model:          "llama3",
		OllamaHost:     "http://localhost:11434",
		BedrockModelID: "anthropic.claude-3-haiku-20240307-v1:0",

		SurrealDBURL:       "ws://localhost:8000/rpc",
		SurrealDBNamespace: "journeytree",
		SurrealDBDatabase:  "journeys",
		SurrealDBUser:      "root",
		SurrealDBPass:      "root",
		SurrealDBAuthLevel: "root",

		LogFile:      "journeytree.log",
		LogLevelName: "INFO",
	}
}

func (c *Config) applyFile(path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setEnv(&c.DataDir, "JOURNEYTREE_DATA_DIR")
	setEnvInt(&c.JourneyMonths, "JOURNEYTREE_MONTHS")
	setEnv(&c.TimelineEpoch, "JOURNEYTREE_EPOCH")

	setEnv(&c.Provider, "JOURNEYTREE_PROVIDER")
	setEnv(&c.Model, "JOURNEYTREE_MODEL")
	setEnv(&c.OllamaHost, "OLLAMA_HOST")
	setEnv(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setEnv(&c.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setEnv(&c.BedrockModelID, "JOURNEYTREE_BEDROCK_MODEL")

	setEnv(&c.SurrealDBURL, "SURREALDB_URL")
	setEnv(&c.SurrealDBNamespace, "SURREALDB_NAMESPACE")
	setEnv(&c.SurrealDBDatabase, "SURREALDB_DATABASE")
	setEnv(&c.SurrealDBUser, "SURREALDB_USER")
	setEnv(&c.SurrealDBPass, "SURREALDB_PASS")
	setEnv(&c.SurrealDBAuthLevel, "SURREALDB_AUTH_LEVEL")

	setEnv(&c.LogFile, "JOURNEYTREE_LOG_FILE")
	setEnv(&c.LogLevelName, "JOURNEYTREE_LOG_LEVEL")
}

func setEnv(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setEnvInt(dst *int, key string) {
	val := os.Getenv(key)
	if val == "" {
		return
	}
	if n, err := strconv.Atoi(val); err == nil && n > 0 {
		*dst = n
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
