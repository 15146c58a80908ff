// Package search filters registered actions for the console search box.
// Matching strategies (substring, token, regex, fuzzy) share the Provider
// interface; Index applies one over a lazily rebuilt cache of tree leaves.
package search

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/debugmenu/internal/action"
)

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if the action matches the search query.
	Match(a action.Action, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Field names accepted by WithFields.
const (
	FieldName  = "name"
	FieldGroup = "group"
	FieldNotes = "notes"
	FieldID    = "id"
)

// Mode names accepted by NewProvider.
const (
	ModeSubstring = "substring"
	ModeToken     = "token"
	ModeRegex     = "regex"
	ModeFuzzy     = "fuzzy"
)

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in (default: name only)
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{FieldName},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "name", "group", "notes", "id".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewProvider returns the provider registered under mode.
func NewProvider(mode string, opts ...Option) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeSubstring:
		return NewSubstringProvider(opts...), nil
	case ModeToken:
		return NewTokenProvider(opts...), nil
	case ModeRegex:
		return NewRegexProvider(opts...), nil
	case ModeFuzzy:
		return NewFuzzyProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unknown search mode %q", mode)
	}
}

// fieldValues returns the non-empty values of the configured fields.
func fieldValues(a action.Action, fields []string) []string {
	info := a.Info()
	values := make([]string, 0, len(fields))
	for _, field := range fields {
		var v string
		switch field {
		case FieldName:
			v = info.Name
		case FieldGroup:
			v = info.Group
		case FieldNotes:
			v = info.Notes
		case FieldID:
			v = info.ID
		}
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}
