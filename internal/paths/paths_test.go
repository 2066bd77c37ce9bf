package paths

import (
	"path/filepath"
	"testing"
)

func TestDefaultStateDirUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(StateDirEnvVar, "")

	dir, err := DefaultStateDir()
	if err != nil {
		t.Fatalf("default state dir: %v", err)
	}
	if want := filepath.Join(home, ".local", "state", "tasklist"); dir != want {
		t.Fatalf("expected %q, got %q", want, dir)
	}
}

func TestDefaultStateDirEnvOverride(t *testing.T) {
	override := t.TempDir()
	t.Setenv(StateDirEnvVar, override)

	dir, err := DefaultStateDir()
	if err != nil {
		t.Fatalf("default state dir: %v", err)
	}
	if dir != override {
		t.Fatalf("expected %q, got %q", override, dir)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("default config path: %v", err)
	}
	if want := filepath.Join(home, ".config", "tasklist", "config.toml"); path != want {
		t.Fatalf("expected %q, got %q", want, path)
	}
}
