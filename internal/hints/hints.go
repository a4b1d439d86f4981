// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"sort"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Suggest the first user-level location that was searched.
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-sitedata/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForRoot returns hints when the site root cannot be used.
func ForRoot() string {
	return format("run from the site directory or pass --root /path/to/site")
}

// ForSlidesDirectory returns hints for a missing slides directory.
func ForSlidesDirectory(dir string) string {
	if dir == "" {
		return ""
	}
	return format("create " + dir + " or set slides.dir in the config file")
}

// ForDateFormat returns hints listing the date format presets.
func ForDateFormat(presets map[string]string) string {
	if len(presets) == 0 {
		return ""
	}
	names := make([]string, 0, len(presets)+1)
	for name := range presets {
		names = append(names, name)
	}
	names = append(names, "rfc3339")
	sort.Strings(names)
	return format("presets: " + strings.Join(names, ", ") + "; or tokens like YYYY-MM-DD")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
