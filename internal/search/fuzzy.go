package search

import (
	"strings"

	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FuzzyProvider matches when the query characters appear in order in any
// configured field, e.g. "tfps" matches "Target FPS".
type FuzzyProvider struct {
	opts Options
}

// NewFuzzyProvider creates a new fuzzy search provider.
func NewFuzzyProvider(opts ...Option) Provider {
	return &FuzzyProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if the query fuzzily matches any configured field.
// Spaces in the query are ignored.
func (p *FuzzyProvider) Match(a action.Action, query string) bool {
	query = strings.ReplaceAll(query, " ", "")
	if query == "" {
		return true
	}

	for _, value := range fieldValues(a, p.opts.Fields) {
		if p.opts.CaseInsensitive {
			if fuzzy.MatchNormalizedFold(query, value) {
				return true
			}
			continue
		}
		if fuzzy.Match(query, value) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *FuzzyProvider) Name() string {
	return ModeFuzzy
}
