// Package config provides layered configuration loading: defaults, then
// DEBUGMENU_* environment variables, then the TOML config file, then the
// environment again so it always wins.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/debugmenu/internal/colors"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DEBUGMENU_"

const (
	// FileModeDir is the permission for directories.
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files.
	FileModeFile os.FileMode = 0644
	// FileExtTOML is the extension of configuration files.
	FileExtTOML = ".toml"
)

var (
	config   map[string]string
	defaults map[string]string
	explicit map[string]bool
	mu       sync.RWMutex
)

func init() {
	initValidators()
}

// Load (re)initializes the configuration.
func Load() {
	mu.Lock()
	defer mu.Unlock()

	config = make(map[string]string)
	defaults = make(map[string]string)
	explicit = make(map[string]bool)

	setDefaults()
	loadFromEnv()
	loadFromFile()
	loadFromEnv()
	validate()
	computeDirs()
	createSampleConfig()
}

// reset clears the loaded configuration.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	config = nil
	defaults = nil
	explicit = nil
}

func setDefaults() {
	home, _ := os.UserHomeDir()
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}
	xdgStateHome := os.Getenv("XDG_STATE_HOME")
	if xdgStateHome == "" {
		xdgStateHome = filepath.Join(home, ".local", "state")
	}

	setDefault("config_dir", filepath.Join(xdgConfigHome, "debugmenu"))
	setDefault("state_dir", filepath.Join(xdgStateHome, "debugmenu"))
	setDefault("storage_backend", "sqlite")
	setDefault("logging_enabled", "false")
	setDefault("logging_level", "info")
	setDefault("logging_max_files", "10")
	setDefault("tick_interval", "50ms")
	setDefault("fast_repeat_threshold", "500ms")
	setDefault("fast_repeat_interval", "50ms")
	setDefault("long_press_duration", "500ms")
	setDefault("confirm_debounce", "0s")
	setDefault("debug", "false")
	setDefault("quiet", "false")
}

func setDefault(key, value string) {
	config[key] = value
	defaults[key] = value
}

// loadFromFile merges DEBUGMENU_CONFIG_PATH or {config_dir}/config.toml.
func loadFromFile() {
	configPath := os.Getenv(EnvPrefix + "CONFIG_PATH")
	if configPath == "" {
		candidate := filepath.Join(config["config_dir"], "config"+FileExtTOML)
		if _, err := os.Stat(candidate); err != nil {
			return
		}
		configPath = candidate
	}
	if !strings.EqualFold(filepath.Ext(configPath), FileExtTOML) {
		return
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		colors.Debug(fmt.Sprintf("unable to read config file %s: %v", configPath, err))
		return
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		colors.Warning(fmt.Sprintf("unable to parse config file %s: %v", configPath, err))
		return
	}
	for k, v := range raw {
		key := strings.ToLower(k)
		converted, ok := coerceConfigValue(v)
		if !ok {
			colors.Warning(fmt.Sprintf("unsupported config value type for %s: %T", key, v))
			continue
		}
		config[key] = converted
		explicit[key] = true
	}
}

// coerceConfigValue converts a TOML value to its string form.
func coerceConfigValue(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}

func loadFromEnv() {
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if key == "config_path" {
			continue
		}
		config[key] = value
		explicit[key] = true
	}
}

func validate() {
	for key, value := range config {
		validator := getValidator(key)
		if validator == nil {
			continue
		}
		def := defaults[key]
		normalized, err := validator(key, value, def)
		if err != nil {
			colors.Warning(fmt.Sprintf("validation error for %s: %v, using default: %s", key, err, def))
			config[key] = def
			continue
		}
		config[key] = normalized
	}
}

// computeDirs derives paths from the directories after overrides applied.
func computeDirs() {
	if !explicit["store_path"] {
		config["store_path"] = filepath.Join(config["state_dir"], "flags.db")
	}
	if !explicit["settings_path"] {
		config["settings_path"] = filepath.Join(config["config_dir"], "console"+FileExtTOML)
	}
}

// valueToInterface converts a stored value to a typed TOML value.
func valueToInterface(val string) any {
	if n, err := strconv.Atoi(val); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return val
}

// createSampleConfig writes the defaults to {config_dir}/config.toml when missing.
func createSampleConfig() {
	configDir := config["config_dir"]
	if configDir == "" {
		return
	}
	samplePath := filepath.Join(configDir, "config"+FileExtTOML)
	if _, err := os.Stat(samplePath); err == nil {
		return
	}
	if err := os.MkdirAll(configDir, FileModeDir); err != nil {
		colors.Debug(fmt.Sprintf("unable to create config dir %s: %v", configDir, err))
		return
	}

	typed := make(map[string]any, len(defaults))
	for k, v := range defaults {
		if k == "config_dir" || k == "state_dir" {
			continue
		}
		typed[k] = valueToInterface(v)
	}
	data, err := toml.Marshal(typed)
	if err != nil {
		colors.Warning(fmt.Sprintf("unable to marshal sample config: %v", err))
		return
	}
	header := "# debugmenu configuration\n# This file is in TOML format.\n\n"
	if err := os.WriteFile(samplePath, append([]byte(header), data...), FileModeFile); err != nil {
		colors.Warning(fmt.Sprintf("unable to write sample config to %s: %v", samplePath, err))
	}
}

// Get returns a configuration value or defaultValue.
func Get(key, defaultValue string) string {
	mu.RLock()
	defer mu.RUnlock()
	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

// GetInt returns a configuration value as integer, or defaultValue.
func GetInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

// GetBool returns a configuration value as boolean, or defaultValue.
func GetBool(key string, defaultValue bool) bool {
	switch normalizeBool(Get(key, "")) {
	case "true":
		return true
	case "false":
		return false
	default:
		return defaultValue
	}
}

// GetDuration returns a configuration value as a duration, or defaultValue.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(Get(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}
