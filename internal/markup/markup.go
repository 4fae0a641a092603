// Package markup converts between the rich-text markup stored on the server and
// what the terminal shows.
package markup

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
)

var (
	strict = bluemonday.StrictPolicy()

	// block boundaries become spaces so adjacent paragraphs do not run together
	blockBoundary = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li|h[1-6]|blockquote|pre|tr)>`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// PlainText strips all markup and returns trimmed text suitable for a list
// snippet. It never modifies the stored content.
func PlainText(markup string) string {
	if markup == "" {
		return ""
	}
	spaced := blockBoundary.ReplaceAllString(markup, " ")
	text := html.UnescapeString(strict.Sanitize(spaced))
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// Snippet is PlainText cut to at most n runes, with an ellipsis when cut.
func Snippet(markup string, n int) string {
	text := PlainText(markup)
	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return text
	}
	if n == 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:n-1])) + "…"
}

// FromMarkdown renders markdown to the HTML markup the web editor stores.
func FromMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", errors.Wrap(err, "convert markdown failed")
	}
	return strings.TrimSpace(buf.String()), nil
}
