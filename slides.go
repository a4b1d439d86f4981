package sitedata

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-sitedata/internal/fileutil"
)

// SlidesFile is the default listing name written inside the slides directory.
const SlidesFile = "slides.json"

// SlideLister lists the gallery images of a directory.
type SlideLister struct {
	logger     *slog.Logger
	extensions map[string]bool
}

// NewSlideLister creates a SlideLister.
func NewSlideLister(opts ...Option) *SlideLister {
	s := newSettings(opts)
	return &SlideLister{logger: s.logger, extensions: extensionSet(s.slideExtensions)}
}

// ListSlides returns the image file names in dir, sorted by name.
// Extensions match case-insensitively. Subdirectories are not descended.
func (l *SlideLister) ListSlides(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSlidesDirNotFound, dir)
		}
		return nil, fmt.Errorf("reading slides directory: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if l.extensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Generate lists dir and writes the names as a JSON array to output.
// An empty output writes <dir>/slides.json.
func (l *SlideLister) Generate(dir, output string) ([]string, error) {
	names, err := l.ListSlides(dir)
	if err != nil {
		return nil, err
	}
	if output == "" {
		output = filepath.Join(dir, SlidesFile)
	}
	if err := fileutil.WriteJSON(output, names); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	l.logger.Debug("slides listed", "dir", dir, "count", len(names))
	return names, nil
}

// WriteSlidesSummary prints the slide listing summary.
func WriteSlidesSummary(w io.Writer, output string, names []string) {
	fmt.Fprintf(w, "✓ Generated %s with %d images\n", filepath.Base(output), len(names))
	fmt.Fprintf(w, "  Files: %s\n", strings.Join(names, ", "))
}
