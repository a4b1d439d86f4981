package sitedata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-sitedata/internal/fileutil"
	"github.com/alnah/go-sitedata/internal/pipeline"
)

// previewLength is the number of characters shown in the console preview.
const previewLength = 50

// Compile-time interface implementation check.
var _ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)

// Info is the notice shown on the site's info panel.
type Info struct {
	Title   string `json:"title"`
	Content string `json:"content"` // HTML fragment
	Output  string `json:"-"`
}

// NoticeGenerator renders a Markdown notice to info JSON.
type NoticeGenerator struct {
	logger       *slog.Logger
	defaultTitle string
	converter    pipeline.HTMLConverter
}

// NewNoticeGenerator creates a NoticeGenerator.
func NewNoticeGenerator(opts ...Option) *NoticeGenerator {
	s := newSettings(opts)
	g := &NoticeGenerator{
		logger:       s.logger,
		defaultTitle: s.noticeTitle,
		converter:    s.htmlConverter,
	}
	if g.converter == nil {
		g.converter = pipeline.NewGoldmarkConverter()
	}
	return g
}

// GenerateInfo reads the Markdown notice at source and writes
// {"title", "content"} JSON to output. A missing source returns
// ErrInfoSourceNotFound, which callers usually treat as "nothing to do".
func (g *NoticeGenerator) GenerateInfo(ctx context.Context, source, output string) (*Info, error) {
	data, err := os.ReadFile(source) // #nosec G304 -- notice path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInfoSourceNotFound, source)
		}
		return nil, fmt.Errorf("reading notice: %w", err)
	}

	meta, body, err := pipeline.SplitFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotice, err)
	}

	content, err := g.converter.ToHTML(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("converting notice: %w", err)
	}

	info := &Info{Title: meta.Title, Content: content}
	if info.Title == "" {
		info.Title = g.defaultTitle
	}

	if err := fileutil.WriteJSON(output, info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	info.Output = output

	g.logger.Debug("notice generated", "source", source, "output", output)
	return info, nil
}

// Preview returns the start of the notice text without markup.
func (i *Info) Preview() string {
	text, err := pipeline.Excerpt(i.Content, previewLength)
	if err != nil {
		return ""
	}
	return text
}

// WriteSummary prints the generation summary with a short preview.
func (i *Info) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "✓ Generated %s\n", filepath.Base(i.Output))
	fmt.Fprintf(w, "  Title: %s\n", i.Title)
	fmt.Fprintf(w, "  Content: %s...\n", i.Preview())
}
