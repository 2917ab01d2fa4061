package querycache

import (
	"encoding/json"
	"fmt"
	"strings"
)

// separator joins key parts. Parts escape it so that user text such as a
// search for "ui/ux" can never read as two parts.
const separator = "/"

var partEscaper = strings.NewReplacer("%", "%25", separator, "%2F")

// Key serializes query parts into a stable cache key. Strings are used
// verbatim apart from escaping; everything else is JSON encoded so that
// struct parameters with equal fields produce equal keys.
func Key(parts ...any) string {
	encoded := make([]string, 0, len(parts))
	for _, part := range parts {
		encoded = append(encoded, partEscaper.Replace(encodePart(part)))
	}
	return strings.Join(encoded, separator)
}

func encodePart(part any) string {
	switch v := part.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	payload, err := json.Marshal(part)
	if err != nil {
		return fmt.Sprintf("%v", part)
	}
	return string(payload)
}

func hasPrefix(key, prefix string) bool {
	if prefix == "" || key == prefix {
		return true
	}
	return strings.HasPrefix(key, prefix+separator)
}
