// Package dateutil converts user-facing date formats to Go layouts and parses
// record dates against them.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named shortcuts accepted wherever a format is configured.
// Separated presets use single-letter month and day tokens so both
// "2023-6-5" and "2023-06-05" parse.
// "rfc3339" maps straight to a Go layout rather than a token format.
var Presets = map[string]string{
	"iso":      "YYYY-M-D",
	"slash":    "YYYY/M/D",
	"compact":  "YYYYMMDD",
	"datetime": "YYYY-M-D HH:mm",
	"european": "D/M/YYYY",
	"us":       "M/D/YYYY",
	"long":     "MMMM D, YYYY",
}

// DefaultFormats are tried in order when no formats are configured.
var DefaultFormats = []string{"iso", "slash", "compact", "datetime", "rfc3339"}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm
// Use brackets to escape literal text: [Date] preserves "Date" literally.
// Any non-token characters outside brackets are preserved as literals.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	layout.Grow(len(format) + 10)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			layout.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		if goFmt, n := matchToken(format[i:]); n > 0 {
			layout.WriteString(goFmt)
			i += n
			continue
		}

		layout.WriteByte(format[i])
		i++
	}

	return layout.String(), nil
}

func matchToken(s string) (string, int) {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			return t.goFmt, len(t.token)
		}
	}
	return "", 0
}

// Layout resolves a preset name (case-insensitive), "rfc3339", or a token
// format to a Go time layout.
func Layout(format string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	if name == "rfc3339" {
		return time.RFC3339, nil
	}
	if preset, ok := Presets[name]; ok {
		format = preset
	}
	return ParseDateFormat(format)
}

// Layouts resolves every format in formats, or DefaultFormats when empty.
func Layouts(formats []string) ([]string, error) {
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	layouts := make([]string, 0, len(formats))
	for _, f := range formats {
		l, err := Layout(f)
		if err != nil {
			return nil, fmt.Errorf("date format %q: %w", f, err)
		}
		layouts = append(layouts, l)
	}
	return layouts, nil
}

// Parse tries each layout in order and returns the first successful parse.
// Dates without a zone are read as UTC.
func Parse(value string, layouts []string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
