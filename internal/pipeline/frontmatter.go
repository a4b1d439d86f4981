package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// ErrFrontMatter indicates the front matter block could not be decoded.
var ErrFrontMatter = errors.New("invalid front matter")

// FrontMatter holds the notice metadata found between "---" delimiters.
type FrontMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// SplitFrontMatter separates the front matter from the Markdown body.
// Content without front matter yields an empty FrontMatter and the whole
// input as body. The body is trimmed of surrounding whitespace.
func SplitFrontMatter(source []byte) (FrontMatter, string, error) {
	var meta FrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(normalizeNewlines(source)), &meta)
	if err != nil {
		return FrontMatter{}, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	meta.Title = strings.TrimSpace(meta.Title)
	return meta, strings.TrimSpace(string(body)), nil
}

func normalizeNewlines(b []byte) []byte {
	return bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
}
