package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the per-user directories.
const AppName = "openskills"

// ConfigDir returns $XDG_CONFIG_HOME/openskills.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DataDir returns $XDG_DATA_HOME/openskills.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// StateDir returns $XDG_STATE_HOME/openskills.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}
