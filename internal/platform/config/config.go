// Package config loads application configuration from environment variables.
// All variables use the LEARN_ prefix.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Curriculum CurriculumConfig
	Export     ExportConfig
	Log        LogConfig
}

// CurriculumConfig holds where roadmaps are loaded from.
type CurriculumConfig struct {
	Path           string
	DefaultRoadmap string
}

// ExportConfig holds workbook export settings.
type ExportConfig struct {
	Dir string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
	Debug  bool
}

// Load reads configuration from environment variables with LEARN_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Curriculum: CurriculumConfig{
			Path:           envStr("LEARN_CURRICULUM_PATH", "./roadmaps"),
			DefaultRoadmap: envStr("LEARN_DEFAULT_ROADMAP", ""),
		},
		Export: ExportConfig{
			Dir: envStr("LEARN_EXPORT_DIR", "."),
		},
		Log: LogConfig{
			Level:  strings.ToLower(envStr("LEARN_LOG_LEVEL", "info")),
			Format: strings.ToLower(envStr("LEARN_LOG_FORMAT", "json")),
			Debug:  envBool("LEARN_DEBUG", false),
		},
	}

	if cfg.Log.Debug {
		cfg.Log.Level = "debug"
	}

	return cfg, nil
}

// Validate checks that required configuration is present and well formed.
func (c *Config) Validate() error {
	if c.Curriculum.Path == "" {
		return fmt.Errorf("LEARN_CURRICULUM_PATH is required")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LEARN_LOG_LEVEL must be one of debug, info, warn, error; got %q", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("LEARN_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
