package post

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// Draft file extensions. Converter-backed drafts carry the .md suffix so
// editors and external tooling treat them as Markdown.
const (
	DraftExt         = ".post"
	DraftExtMarkdown = ".post.md"
)

// DraftExtension returns the extension for a draft file depending on
// whether a converter is configured.
func DraftExtension(converted bool) string {
	if converted {
		return DraftExtMarkdown
	}
	return DraftExt
}

// DraftPath builds the file path for a titled draft inside dir. The
// title is slugified for filesystem safety; the title itself lives in
// the draft index, not the filename.
func DraftPath(dir, title string, converted bool) string {
	stem := slug.Make(title)
	if stem == "" {
		stem = "untitled"
	}
	return filepath.Join(dir, stem+DraftExtension(converted))
}

// IsDraftPath reports whether path has one of the draft extensions.
func IsDraftPath(path string) bool {
	return strings.HasSuffix(path, DraftExtMarkdown) ||
		strings.HasSuffix(path, DraftExt)
}

// DraftStem returns the base filename without its draft extension,
// used as a display title for drafts that predate the index.
func DraftStem(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, DraftExtMarkdown)
	base = strings.TrimSuffix(base, DraftExt)
	return base
}
