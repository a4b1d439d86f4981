package pipeline

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Excerpt returns the visible text of an HTML fragment with runs of
// whitespace collapsed, cut to at most limit runes. A limit of zero or less
// returns the full text.
func Excerpt(fragment string, limit int) (string, error) {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			return truncate(strings.Join(strings.Fields(sb.String()), " "), limit), nil
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// Tags separate words: "a<br />b" reads as "a b".
			sb.WriteByte(' ')
		}
	}
}

func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
