package yamlsubset

import (
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern accepts plain decimal literals only. Hex, Infinity, NaN and
// underscore-separated digits are left as strings.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Coerce converts a single token into a Value.
//
//   - "[]" becomes the empty list
//   - "null" and "~" become Null
//   - decimal literals become numbers (surrounding whitespace is ignored)
//   - text wrapped in matching single or double quotes is unwrapped, with no
//     escape processing
//   - anything else is returned verbatim as a string
//
// Coerce never fails.
func Coerce(token string) Value {
	switch token {
	case "[]":
		return List()
	case "null", "~":
		return Null()
	}
	if f, ok := ParseNumber(token); ok {
		return Number(f)
	}
	if inner, ok := unquote(token); ok {
		return String(inner)
	}
	return String(token)
}

// ParseNumber reports whether token is a decimal number and returns its value.
// The empty string and whitespace-only strings are not numbers.
func ParseNumber(token string) (float64, bool) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" || !decimalPattern.MatchString(trimmed) {
		return 0, false
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		// Out of range literals such as 1e999.
		return 0, false
	}
	return f, true
}

// Dequote strips one pair of matching quotes, or returns s unchanged.
func Dequote(s string) string {
	if inner, ok := unquote(s); ok {
		return inner
	}
	return s
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' || first == '\'') && first == last {
		return s[1 : len(s)-1], true
	}
	return "", false
}
