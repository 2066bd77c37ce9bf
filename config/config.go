// Package config handles loading the tasklist config.toml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"tasklist/internal/paths"
	"tasklist/model"
	"tasklist/store"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultNoticeDuration is how long a transient error notice stays visible.
const DefaultNoticeDuration = 3 * time.Second

// Config represents the config.toml file.
type Config struct {
	Storage Storage `toml:"storage"`
	UI      UI      `toml:"ui"`
}

// Storage selects where the task collection is persisted.
type Storage struct {
	// Backend is one of "file", "sqlite" or "memory".
	Backend string `toml:"backend"`
	// Dir holds the state file or database. Empty means the default state dir.
	Dir string `toml:"dir"`
	// Key is the single key the whole collection lives under.
	Key string `toml:"key"`
}

// UI contains interactive front-end settings.
type UI struct {
	NoticeDuration  string `toml:"notice-duration"`
	DefaultPriority string `toml:"default-priority"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: Storage{
			Backend: BackendFile,
			Key:     store.DefaultKey,
		},
		UI: UI{
			NoticeDuration:  DefaultNoticeDuration.String(),
			DefaultPriority: string(model.PriorityLow),
		},
	}
}

// Load reads path, or the global config file when path is empty.
// A missing file yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = paths.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Storage.Dir = strings.TrimSpace(c.Storage.Dir)
	c.Storage.Key = strings.TrimSpace(c.Storage.Key)
	c.UI.NoticeDuration = strings.TrimSpace(c.UI.NoticeDuration)
	c.UI.DefaultPriority = strings.ToLower(strings.TrimSpace(c.UI.DefaultPriority))
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Key == "" {
		c.Storage.Key = store.DefaultKey
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if c.UI.NoticeDuration != "" {
		d, err := time.ParseDuration(c.UI.NoticeDuration)
		if err != nil {
			return fmt.Errorf("ui.notice-duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("ui.notice-duration: must be positive, got %s", d)
		}
	}
	if c.UI.DefaultPriority != "" && !model.Priority(c.UI.DefaultPriority).Valid() {
		return fmt.Errorf("ui.default-priority: unknown priority %q", c.UI.DefaultPriority)
	}
	return nil
}

// NoticeDuration returns the parsed notice delay.
func (c *Config) NoticeDuration() time.Duration {
	d, err := time.ParseDuration(c.UI.NoticeDuration)
	if err != nil || d <= 0 {
		return DefaultNoticeDuration
	}
	return d
}

// DefaultPriority returns the priority preselected for new tasks.
func (c *Config) DefaultPriority() model.Priority {
	p := model.Priority(c.UI.DefaultPriority)
	if !p.Valid() {
		return model.PriorityLow
	}
	return p
}

// StateDir returns the storage directory, expanding a leading ~/.
// TASKLIST_STATE_DIR takes precedence over storage.dir.
func (c *Config) StateDir() (string, error) {
	if dir := os.Getenv(paths.StateDirEnvVar); dir != "" {
		return dir, nil
	}
	dir := c.Storage.Dir
	if dir == "" {
		return paths.DefaultStateDir()
	}
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return dir, nil
}
