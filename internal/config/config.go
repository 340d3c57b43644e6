// Package config loads the application configuration from environment
// variables and an optional .env file, with per-repository overrides from a
// .quorum.yml checked into the reviewed repository.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/quorumci/quorum/internal/core"
)

// DefaultModels is the backend set used when none is configured.
const DefaultModels = "anthropic:claude-sonnet-4-5,openai:gpt-4o,gemini:gemini-2.5-pro"

// Config holds the application's configuration values.
type Config struct {
	ModelSpecs      []core.ModelSpec
	ExtractionSpec  core.ModelSpec
	TokenLimit      int
	FailOnError     bool
	PassThreshold   core.PassThreshold
	ReportPath      string
	LogLevel        slog.Level
	LogFormat       string
	AttemptTimeoutS int
	MaxRetries      int
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields. It uses the Viper
// library to handle configuration loading and precedence.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetEnvPrefix("QUORUM")
	v.AutomaticEnv()

	v.SetDefault("MODELS", DefaultModels)
	v.SetDefault("EXTRACTION_MODEL", "")
	v.SetDefault("TOKEN_LIMIT", 150000)
	v.SetDefault("FAIL_ON_ERROR", false)
	v.SetDefault("PASS_THRESHOLD", "none")
	v.SetDefault("REPORT_PATH", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("ATTEMPT_TIMEOUT_SECONDS", 30)
	v.SetDefault("MAX_RETRIES", 3)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Debug("no .env file loaded", "error", err)
		}
	}

	specs, err := ParseModelSpecs(v.GetString("MODELS"))
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("QUORUM_MODELS must name at least one provider:model pair")
	}

	// The extraction backend defaults to the first configured model.
	extractionSpec := specs[0]
	if raw := v.GetString("EXTRACTION_MODEL"); raw != "" {
		extractionSpec, err = core.ParseModelSpec(raw)
		if err != nil {
			return nil, fmt.Errorf("QUORUM_EXTRACTION_MODEL: %w", err)
		}
	}

	threshold, err := core.ParsePassThreshold(v.GetString("PASS_THRESHOLD"))
	if err != nil {
		return nil, fmt.Errorf("QUORUM_PASS_THRESHOLD: %w", err)
	}

	return &Config{
		ModelSpecs:      specs,
		ExtractionSpec:  extractionSpec,
		TokenLimit:      v.GetInt("TOKEN_LIMIT"),
		FailOnError:     v.GetBool("FAIL_ON_ERROR"),
		PassThreshold:   threshold,
		ReportPath:      v.GetString("REPORT_PATH"),
		LogLevel:        parseLogLevel(v.GetString("LOG_LEVEL")),
		LogFormat:       v.GetString("LOG_FORMAT"),
		AttemptTimeoutS: v.GetInt("ATTEMPT_TIMEOUT_SECONDS"),
		MaxRetries:      v.GetInt("MAX_RETRIES"),
	}, nil
}

// ParseModelSpecs parses a comma-separated list of provider:model pairs.
func ParseModelSpecs(raw string) ([]core.ModelSpec, error) {
	parts := strings.Split(raw, ",")
	specs := make([]core.ModelSpec, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		spec, err := core.ParseModelSpec(part)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// parseLogLevel maps a level string into a slog.Level, defaulting to info.
func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		slog.Warn("unrecognized log level, defaulting to info", "provided", raw)
		return slog.LevelInfo
	}
}
