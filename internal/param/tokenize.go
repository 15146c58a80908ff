package param

import "strings"

// Tokenize splits input on spaces that sit outside double-quoted spans.
// Surrounding quotes are stripped from each token and "" is unescaped to ".
// Empty tokens are dropped.
func Tokenize(input string) []string {
	// A space splits only when an even number of quotes follows it.
	remaining := strings.Count(input, `"`)

	var tokens []string
	start := 0
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '"':
			remaining--
		case ' ':
			if remaining%2 == 0 {
				tokens = appendToken(tokens, input[start:i])
				start = i + 1
			}
		}
	}
	return appendToken(tokens, input[start:])
}

func appendToken(tokens []string, raw string) []string {
	if raw == "" {
		return tokens
	}
	return append(tokens, strings.ReplaceAll(strings.Trim(raw, `"`), `""`, `"`))
}
