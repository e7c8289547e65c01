// Package config loads user settings from a TOML file and OPENSKILLS_*
// environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g. OPENSKILLS_PAGE_SIZE.
const EnvPrefix = "OPENSKILLS"

const (
	DefaultPageSize      = 15
	DefaultAgentsFile    = "AGENTS.md"
	DefaultLogMaxEntries = 1000
	DefaultTrashMaxAge   = 7 * 24 * time.Hour
)

// Duration is a time.Duration written as text ("168h", "7d").
type Duration struct {
	time.Duration
}

// UnmarshalText accepts Go durations plus a whole-day "Nd" form.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if days, ok := strings.CutSuffix(s, "d"); ok {
		var n int
		if _, err := fmt.Sscanf(days, "%d", &n); err != nil || n < 0 {
			return fmt.Errorf("invalid duration %q", s)
		}
		d.Duration = time.Duration(n) * 24 * time.Hour
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

// MarshalText writes the Go duration form.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds defaults for command flags.
type Config struct {
	// Install into .agent/skills instead of .claude/skills.
	Universal bool `toml:"universal" envconfig:"UNIVERSAL"`
	// Install into the home directory instead of the project.
	Global bool `toml:"global" envconfig:"GLOBAL"`
	// Rows shown by interactive pickers.
	PageSize int `toml:"page_size" envconfig:"PAGE_SIZE"`
	// File that sync and unsync edit.
	AgentsFile string `toml:"agents_file" envconfig:"AGENTS_FILE"`
	// Remove skills outright instead of moving them to the trash.
	PermanentDelete bool `toml:"permanent_delete" envconfig:"PERMANENT_DELETE"`
	// Operation log entries kept; 0 keeps everything.
	LogMaxEntries int `toml:"log_max_entries" envconfig:"LOG_MAX_ENTRIES"`
	// Trash entries older than this are purged.
	TrashMaxAge Duration `toml:"trash_max_age" envconfig:"TRASH_MAX_AGE"`
	// Debug log level (panic..trace).
	LogLevel string `toml:"log_level" envconfig:"LOG_LEVEL"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		PageSize:      DefaultPageSize,
		AgentsFile:    DefaultAgentsFile,
		LogMaxEntries: DefaultLogMaxEntries,
		TrashMaxAge:   Duration{DefaultTrashMaxAge},
		LogLevel:      "warn",
	}
}

// Load reads the config file at path (ConfigPath when empty) and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the commands can not work with.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	if strings.TrimSpace(c.AgentsFile) == "" {
		return fmt.Errorf("agents_file must not be empty")
	}
	if c.LogMaxEntries < 0 {
		return fmt.Errorf("log_max_entries must not be negative")
	}
	if c.TrashMaxAge.Duration < 0 {
		return fmt.Errorf("trash_max_age must not be negative")
	}
	return nil
}

// Save writes c to path as TOML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
