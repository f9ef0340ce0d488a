// Package convert turns draft content into the body that is mailed to
// the blog platform. Conversion runs either through an external command
// (content piped to stdin, HTML read from stdout) or an in-process
// Markdown renderer.
package convert

import (
	"context"
	"log"
	"strings"

	"github.com/nhle/mailpost/internal/post"
)

// Converter renders post content for submission.
type Converter interface {
	Convert(ctx context.Context, src string) (string, error)
}

// Apply runs the conversion step over a working copy of text: the
// content before the cutoff marker goes through conv, the converted
// result is unwrapped into long lines, and the directive block after
// the marker is carried through untouched. The input text is never
// modified. Converter failures propagate to the caller unchanged.
func Apply(ctx context.Context, conv Converter, text, marker string) (string, error) {
	sp := post.SplitAtMarker(text, marker)
	if !sp.Found {
		log.Printf("cutoff marker %q not found; converting from an empty span", marker)
	}

	out, err := conv.Convert(ctx, sp.Head)
	if err != nil {
		return "", err
	}

	return Unwrap(out) + sp.Tail, nil
}

// Unwrap joins the lines of every paragraph into one long line, keeping
// blank lines as separators. Receiving platforms turn newlines in the
// mail body into <br>, so converted markup is flattened first.
func Unwrap(text string) string {
	if text == "" {
		return ""
	}

	hadTrailingNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	var out []string
	var para []string
	flush := func() {
		if len(para) > 0 {
			out = append(out, strings.Join(para, " "))
			para = nil
		}
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			out = append(out, "")
			continue
		}
		para = append(para, strings.TrimRight(line, " \t"))
	}
	flush()

	result := strings.Join(out, "\n")
	if hadTrailingNewline {
		result += "\n"
	}
	return result
}
