package components

import (
	"fmt"
	"strings"
)

// Assignments parses field=value tokens. A token without "=" continues the
// previous value, so "summary=Backend engineer" survives whitespace
// splitting.
func Assignments(tokens []string) (map[string]string, error) {
	out := map[string]string{}
	last := ""
	for _, tok := range tokens {
		name, value, ok := strings.Cut(tok, "=")
		if !ok || name == "" {
			if last == "" {
				return nil, fmt.Errorf("expected field=value, got %q", tok)
			}
			out[last] += " " + tok
			continue
		}
		out[name] = value
		last = name
	}
	return out, nil
}
