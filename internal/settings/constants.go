// Package settings persists the console preferences.
package settings

import "os"

const (
	// FileModeDir is the permission for directories (rwxr-xr-x).
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for the settings file (rw-r--r--).
	FileModeFile os.FileMode = 0644

	// FileExtTOML is the extension of the settings file.
	FileExtTOML = ".toml"
)

// Search modes.
const (
	SearchModeSubstring = "substring"
	SearchModeFuzzy     = "fuzzy"
	SearchModeToken     = "token"
	SearchModeRegex     = "regex"
)

// Defaults and limits.
const (
	DefaultLoggerMaxLines = 100
	DefaultViewportRows   = 10
	DefaultOverscanRows   = 1

	MaxLoggerMaxLines = 10000
	MaxViewportRows   = 200
	MaxOverscanRows   = 8
)
