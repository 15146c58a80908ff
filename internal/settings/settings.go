package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the console preferences.
//
// Stored at {config_dir}/console.toml:
//
//	case_sensitive_search = false
//	search_mode = "substring"
//	show_tooltip_on_keyboard_navigation = true
//	enable_input_navigation = true
//	logger_max_lines = 100
//	disable_logger = false
//	add_application_options = true
//	add_logger_options = true
//	viewport_rows = 10
//	overscan_rows = 1
type Settings struct {
	// CaseSensitiveSearch disables case folding in search.
	CaseSensitiveSearch bool `toml:"case_sensitive_search"`

	// SearchMode selects the matcher: "substring", "fuzzy", "token" or "regex".
	SearchMode string `toml:"search_mode"`

	// ShowTooltipOnKeyboardNavigation surfaces the description of each
	// newly selected action.
	ShowTooltipOnKeyboardNavigation bool `toml:"show_tooltip_on_keyboard_navigation"`

	// EnableInputNavigation lets the keyboard drive the menu.
	EnableInputNavigation bool `toml:"enable_input_navigation"`

	LoggerMaxLines int  `toml:"logger_max_lines"`
	DisableLogger  bool `toml:"disable_logger"`

	// AddApplicationOptions registers the Application group on startup.
	AddApplicationOptions bool `toml:"add_application_options"`
	// AddLoggerOptions registers the Logger group on startup.
	AddLoggerOptions bool `toml:"add_logger_options"`

	ViewportRows int `toml:"viewport_rows"`
	OverscanRows int `toml:"overscan_rows"`
}

// DefaultSettings returns settings with all default values.
func DefaultSettings() *Settings {
	return &Settings{
		SearchMode:                      SearchModeSubstring,
		ShowTooltipOnKeyboardNavigation: true,
		EnableInputNavigation:           true,
		LoggerMaxLines:                  DefaultLoggerMaxLines,
		AddApplicationOptions:           true,
		AddLoggerOptions:                true,
		ViewportRows:                    DefaultViewportRows,
		OverscanRows:                    DefaultOverscanRows,
	}
}

// Load reads the settings file from the configured path.
func Load() (*Settings, error) {
	return LoadFrom(Path())
}

// LoadFrom reads settings from path. A missing file yields the defaults;
// keys absent from the file keep their default value.
func LoadFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if err := Validate(settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// Save writes settings to the configured path.
func Save(settings *Settings) error {
	return SaveTo(Path(), settings)
}

// SaveTo validates settings and writes them to path, creating the parent
// directory if needed.
func SaveTo(path string, settings *Settings) error {
	if err := Validate(settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), FileModeFile); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
