package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tasklist/config"
	"tasklist/model"
	"tasklist/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_NotFound(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Backend != config.BackendFile {
		t.Errorf("expected file backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Key != store.DefaultKey {
		t.Errorf("expected default key, got %q", cfg.Storage.Key)
	}
	if cfg.NoticeDuration() != 3*time.Second {
		t.Errorf("expected 3s notice, got %s", cfg.NoticeDuration())
	}
	if cfg.DefaultPriority() != model.PriorityLow {
		t.Errorf("expected low default priority, got %q", cfg.DefaultPriority())
	}
}

func TestLoad_GlobalPathFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "tasklist")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[storage]\nbackend = \"sqlite\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != config.BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.Storage.Backend)
	}
}

func TestLoad_Full(t *testing.T) {
	t.Setenv("TASKLIST_STATE_DIR", "")
	path := writeConfig(t, `
[storage]
backend = " SQLite "
dir = "/tmp/tasks"
key = "myTasks"

[ui]
notice-duration = "1500ms"
default-priority = "High"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Storage.Backend != config.BackendSQLite {
		t.Errorf("expected sqlite, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Key != "myTasks" {
		t.Errorf("expected myTasks, got %q", cfg.Storage.Key)
	}
	if cfg.NoticeDuration() != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %s", cfg.NoticeDuration())
	}
	if cfg.DefaultPriority() != model.PriorityHigh {
		t.Errorf("expected high, got %q", cfg.DefaultPriority())
	}
	dir, err := cfg.StateDir()
	if err != nil || dir != "/tmp/tasks" {
		t.Errorf("expected /tmp/tasks, got %q (%v)", dir, err)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[ui]\ndefault-priority = \"medium\"\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != config.BackendFile || cfg.Storage.Key != store.DefaultKey {
		t.Errorf("expected storage defaults, got %+v", cfg.Storage)
	}
	if cfg.NoticeDuration() != config.DefaultNoticeDuration {
		t.Errorf("expected default notice duration, got %s", cfg.NoticeDuration())
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"backend":  "[storage]\nbackend = \"redis\"\n",
		"duration": "[ui]\nnotice-duration = \"soon\"\n",
		"negative": "[ui]\nnotice-duration = \"-1s\"\n",
		"priority": "[ui]\ndefault-priority = \"urgent\"\n",
		"unknown":  "[storage]\nbucket = \"x\"\n",
		"syntax":   "[storage\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, content)
			_, err := config.Load(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("expected error to name the file, got %v", err)
			}
		})
	}
}

func TestStateDirExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKLIST_STATE_DIR", "")
	cfg := config.Default()
	cfg.Storage.Dir = "~/tasks"

	dir, err := cfg.StateDir()
	if err != nil {
		t.Fatalf("state dir: %v", err)
	}
	if want := filepath.Join(home, "tasks"); dir != want {
		t.Errorf("expected %q, got %q", want, dir)
	}
}

func TestStateDirDefault(t *testing.T) {
	override := t.TempDir()
	t.Setenv("TASKLIST_STATE_DIR", override)

	dir, err := config.Default().StateDir()
	if err != nil {
		t.Fatalf("state dir: %v", err)
	}
	if dir != override {
		t.Errorf("expected %q, got %q", override, dir)
	}
}

func TestStateDirEnvOverridesConfig(t *testing.T) {
	override := t.TempDir()
	t.Setenv("TASKLIST_STATE_DIR", override)
	cfg := config.Default()
	cfg.Storage.Dir = "/tmp/tasks"

	dir, err := cfg.StateDir()
	if err != nil {
		t.Fatalf("state dir: %v", err)
	}
	if dir != override {
		t.Errorf("expected %q, got %q", override, dir)
	}
}
