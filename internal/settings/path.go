package settings

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/debugmenu/internal/config"
)

const settingsFilename = "console" + FileExtTOML

// Path returns the filesystem path of the settings file. It respects the
// settings_path override.
func Path() string {
	config.Load()
	if override := config.Get("settings_path", ""); override != "" {
		return override
	}
	return filepath.Join(resolveConfigDir(), settingsFilename)
}

// resolveConfigDir returns the configured config directory, falling back to
// the XDG default if needed.
func resolveConfigDir() string {
	if configDir := config.Get("config_dir", ""); configDir != "" {
		return configDir
	}
	home, _ := os.UserHomeDir()
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfigHome, "debugmenu")
}
