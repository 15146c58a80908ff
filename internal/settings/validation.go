package settings

import "fmt"

// Validate checks that settings values are valid.
// Preconditions: settings must be non-nil.
func Validate(settings *Settings) error {
	if settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}
	if err := validateSearchMode(settings.SearchMode); err != nil {
		return err
	}
	if err := validateRange("logger_max_lines", settings.LoggerMaxLines, 1, MaxLoggerMaxLines); err != nil {
		return err
	}
	if err := validateRange("viewport_rows", settings.ViewportRows, 1, MaxViewportRows); err != nil {
		return err
	}
	if err := validateRange("overscan_rows", settings.OverscanRows, 0, MaxOverscanRows); err != nil {
		return err
	}
	return nil
}

func validateSearchMode(mode string) error {
	switch mode {
	case "", SearchModeSubstring, SearchModeFuzzy, SearchModeToken, SearchModeRegex:
		return nil
	default:
		return fmt.Errorf("invalid search_mode value: %s", mode)
	}
}

func validateRange(name string, value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("invalid %s value: %d (want %d-%d)", name, value, lo, hi)
	}
	return nil
}
