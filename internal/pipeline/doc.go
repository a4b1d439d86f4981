// Package pipeline turns a Markdown notice into the HTML fragment embedded
// in the site's info.json.
//
// The stages are:
//   - front matter split (title and any extra keys)
//   - Markdown to HTML fragment conversion via Goldmark
//   - plain-text excerpt of the rendered HTML for console previews
package pipeline
