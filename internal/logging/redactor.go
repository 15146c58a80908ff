package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var segmentSplitter = regexp.MustCompile(`[^a-z0-9]+`)

// redactor hides values whose key names a credential.
type redactor struct {
	sensitive map[string]bool
}

func newRedactor() *redactor {
	r := &redactor{sensitive: make(map[string]bool)}
	for _, w := range []string{"secret", "password", "token", "key", "auth", "credential"} {
		r.sensitive[w] = true
	}
	return r
}

// redact returns a copy of the flattened key/value pairs with sensitive values replaced.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	out := append([]any(nil), pairs...)
	for i := 0; i+1 < len(out); i += 2 {
		if key, ok := out[i].(string); ok && r.isSensitive(key) {
			out[i+1] = redacted
		}
	}
	return out
}

// isSensitive matches whole key segments, so "api_token" is sensitive and "tokenizer" is not.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range segmentSplitter.Split(strings.ToLower(key), -1) {
		if r.sensitive[part] {
			return true
		}
	}
	return false
}
