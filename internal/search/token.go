package search

import (
	"strings"

	"github.com/cristianoliveira/debugmenu/internal/action"
)

// TokenProvider provides token-based search.
// The query is split into whitespace-separated tokens and each token must
// match at least one field (AND logic). A token of the form "group:name"
// only matches actions whose group contains name.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if every token matches.
func (p *TokenProvider) Match(a action.Action, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}

	values := fieldValues(a, p.opts.Fields)
	group := a.Info().Group
	if p.opts.CaseInsensitive {
		for i := range values {
			values[i] = strings.ToLower(values[i])
		}
		group = strings.ToLower(group)
	}

	for _, token := range strings.Fields(query) {
		if p.opts.CaseInsensitive {
			token = strings.ToLower(token)
		}
		if name, ok := strings.CutPrefix(token, "group:"); ok {
			if group == "" || !strings.Contains(group, name) {
				return false
			}
			continue
		}

		matched := false
		for _, value := range values {
			if strings.Contains(value, token) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return ModeToken
}
