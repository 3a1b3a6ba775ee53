package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/p-n-ai/pai-roadmap/internal/platform/config"
)

const testRoadmap = `
id: backend
title: "Backend Developer"
steps:
  - id: 1
    number: "01"
    title: "Internet Basics"
    desc: "How the web works"
    weeks_to_finish: 1
    category: fundamentals
    resources: ["MDN"]
  - id: 2
    number: "02"
    title: "Go Language"
    weeks_to_finish: 4
    category: language
    prerequisites: [1]
`

func setupConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "backend.yaml"), []byte(testRoadmap), 0o644); err != nil {
		t.Fatalf("writing roadmap: %v", err)
	}
	return &config.Config{
		Curriculum: config.CurriculumConfig{Path: dir},
		Export:     config.ExportConfig{Dir: t.TempDir()},
		Log:        config.LogConfig{Level: "info", Format: "json"},
	}
}

func runCmd(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LogConfig
		wantJSON bool
		logDebug bool
	}{
		{"json info", config.LogConfig{Level: "info", Format: "json"}, true, false},
		{"text debug", config.LogConfig{Level: "debug", Format: "text"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(tt.cfg, &buf)

			logger.Debug("debug line")
			logger.Info("info line", "roadmap", "backend")

			got := buf.String()
			if strings.Contains(got, "debug line") != tt.logDebug {
				t.Errorf("debug logged = %v, want %v: %s", !tt.logDebug, tt.logDebug, got)
			}
			if strings.HasPrefix(got, "{") != tt.wantJSON {
				t.Errorf("JSON output = %v, want %v: %s", !tt.wantJSON, tt.wantJSON, got)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestListCommand(t *testing.T) {
	cfg := setupConfig(t)

	out, err := runCmd(t, cfg, "", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "backend") || !strings.Contains(out, "2 steps, 5 weeks") {
		t.Errorf("list output = %q", out)
	}
}

func TestListCommand_Empty(t *testing.T) {
	cfg := setupConfig(t)
	cfg.Curriculum.Path = t.TempDir()

	out, err := runCmd(t, cfg, "", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "No roadmaps found") {
		t.Errorf("list output = %q", out)
	}
}

func TestShowCommand(t *testing.T) {
	cfg := setupConfig(t)

	out, err := runCmd(t, cfg, "", "show")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.Contains(out, "Backend Developer") || !strings.Contains(out, "Go Language") {
		t.Errorf("show output = %q", out)
	}

	out, err = runCmd(t, cfg, "", "show", "backend", "--step", "2")
	if err != nil {
		t.Fatalf("show --step error = %v", err)
	}
	if !strings.Contains(out, "4 weeks") || !strings.Contains(out, "LANGUAGE") {
		t.Errorf("show --step output = %q", out)
	}

	if _, err := runCmd(t, cfg, "", "show", "backend", "--step", "9"); err == nil {
		t.Error("show --step 9 should error for an unknown step")
	}
	if _, err := runCmd(t, cfg, "", "show", "frontend"); err == nil {
		t.Error("show frontend should error for an unknown roadmap")
	}
}

func TestShowCommand_FromFile(t *testing.T) {
	cfg := setupConfig(t)
	path := filepath.Join(cfg.Curriculum.Path, "backend.yaml")
	cfg.Curriculum.Path = t.TempDir()

	out, err := runCmd(t, cfg, "", "show", path)
	if err != nil {
		t.Fatalf("show <file> error = %v", err)
	}
	if !strings.Contains(out, "Internet Basics") {
		t.Errorf("show <file> output = %q", out)
	}
}

func TestPlayCommand(t *testing.T) {
	cfg := setupConfig(t)

	out, err := runCmd(t, cfg, "/select 2\n/next\n/done\n/progress\n/quit\n/next\n", "play", "backend")
	if err != nil {
		t.Fatalf("play error = %v", err)
	}

	for _, want := range []string{
		"Backend Developer",
		"is locked",
		"Go Language",
		"Marked #02 Go Language as completed",
		"Progress: 100% (2/2 steps)",
		"Session ended",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("play output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayCommand_EOF(t *testing.T) {
	cfg := setupConfig(t)

	if _, err := runCmd(t, cfg, "/next\n", "play"); err != nil {
		t.Fatalf("play error = %v", err)
	}
}

func TestPlayCommand_InterruptWhileWaiting(t *testing.T) {
	cfg := setupConfig(t)

	// stdin never delivers a line, like a terminal waiting for Enter.
	stdin, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cmd := newRootCmd(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(stdin)
	cmd.SetArgs([]string{"play", "backend"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("play error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("play did not return after the context was canceled")
	}
}

func TestExportCommand(t *testing.T) {
	cfg := setupConfig(t)
	path := filepath.Join(t.TempDir(), "plan.xlsx")

	out, err := runCmd(t, cfg, "", "export", "backend", "-o", path)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("export output = %q", out)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("export file missing or empty: %v", err)
	}
}

func TestIsQuit(t *testing.T) {
	tests := map[string]bool{
		"/quit":  true,
		"exit":   true,
		"/QUIT ": true,
		"/next":  false,
		"":       false,
	}
	for in, want := range tests {
		if got := isQuit(in); got != want {
			t.Errorf("isQuit(%q) = %v, want %v", in, got, want)
		}
	}
}
