package convert

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Goldmark renders Markdown to HTML in-process. It is the "builtin"
// converter: no external program needed, GitHub-flavored Markdown plus
// footnotes.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark creates the built-in Markdown converter.
func NewGoldmark() *Goldmark {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	return &Goldmark{md: md}
}

// Convert renders src as Markdown.
func (g *Goldmark) Convert(_ context.Context, src string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
