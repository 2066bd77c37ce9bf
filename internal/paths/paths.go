package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// StateDirEnvVar overrides DefaultStateDir.
const StateDirEnvVar = "TASKLIST_STATE_DIR"

// DefaultStateDir returns the directory the task collection is stored in.
func DefaultStateDir() (string, error) {
	if dir := os.Getenv(StateDirEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".local", "state", "tasklist"), nil
}

// DefaultConfigPath returns the global config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".config", "tasklist", "config.toml"), nil
}
