package config

import (
	"os"
	"testing"
)

// clearEnv unsets all LEARN_ environment variables for a clean test.
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"LEARN_CURRICULUM_PATH",
		"LEARN_DEFAULT_ROADMAP",
		"LEARN_EXPORT_DIR",
		"LEARN_LOG_LEVEL",
		"LEARN_LOG_FORMAT",
		"LEARN_DEBUG",
	}
	for _, v := range envVars {
		_ = os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Curriculum.Path != "./roadmaps" {
		t.Errorf("Curriculum.Path = %q, want ./roadmaps", cfg.Curriculum.Path)
	}
	if cfg.Curriculum.DefaultRoadmap != "" {
		t.Errorf("Curriculum.DefaultRoadmap = %q, want empty", cfg.Curriculum.DefaultRoadmap)
	}
	if cfg.Export.Dir != "." {
		t.Errorf("Export.Dir = %q, want .", cfg.Export.Dir)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("LEARN_CURRICULUM_PATH", "/srv/roadmaps")
	t.Setenv("LEARN_DEFAULT_ROADMAP", "backend")
	t.Setenv("LEARN_EXPORT_DIR", "/tmp/exports")
	t.Setenv("LEARN_LOG_LEVEL", "WARN")
	t.Setenv("LEARN_LOG_FORMAT", "Text")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Curriculum.Path != "/srv/roadmaps" {
		t.Errorf("Curriculum.Path = %q, want /srv/roadmaps", cfg.Curriculum.Path)
	}
	if cfg.Curriculum.DefaultRoadmap != "backend" {
		t.Errorf("Curriculum.DefaultRoadmap = %q, want backend", cfg.Curriculum.DefaultRoadmap)
	}
	if cfg.Export.Dir != "/tmp/exports" {
		t.Errorf("Export.Dir = %q, want /tmp/exports", cfg.Export.Dir)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
}

func TestDebugParsing(t *testing.T) {
	tests := []struct {
		name      string
		val       string
		wantLevel string
	}{
		{"true", "true", "debug"},
		{"TRUE", "TRUE", "debug"},
		{"1", "1", "debug"},
		{"false", "false", "info"},
		{"0", "0", "info"},
		{"empty", "", "info"},
		{"invalid", "notabool", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.val != "" {
				t.Setenv("LEARN_DEBUG", tt.val)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Log.Level != tt.wantLevel {
				t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, tt.wantLevel)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"defaults", nil, false},
		{"text format", map[string]string{"LEARN_LOG_FORMAT": "text"}, false},
		{"invalid format", map[string]string{"LEARN_LOG_FORMAT": "xml"}, true},
		{"invalid level", map[string]string{"LEARN_LOG_LEVEL": "verbose"}, true},
		{"debug level", map[string]string{"LEARN_LOG_LEVEL": "debug"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_EmptyCurriculumPath(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "info", Format: "json"}}

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() should return error when curriculum path is empty")
	}
}
