package post

import (
	"strings"
	"unicode/utf8"
)

// Title candidates built from text spans must be longer than a few runes
// (trimmed) yet still fit a headline (untrimmed).
const (
	minTitleRunes = 4
	maxTitleRunes = 60
)

// SuggestTitles builds the candidate title list offered when a post is
// initialized. The buffer name always comes first; each span (typically
// the word, line, and sentence around the insertion point) is appended
// trimmed when it qualifies. Duplicates are dropped, first occurrence
// wins.
func SuggestTitles(bufferName string, spans ...string) []string {
	titles := make([]string, 0, len(spans)+1)
	seen := make(map[string]bool, len(spans)+1)

	titles = append(titles, bufferName)
	seen[bufferName] = true

	for _, span := range spans {
		trimmed := strings.TrimSpace(span)
		if utf8.RuneCountInString(trimmed) <= minTitleRunes {
			continue
		}
		if utf8.RuneCountInString(span) >= maxTitleRunes {
			continue
		}
		if seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		titles = append(titles, trimmed)
	}

	return titles
}
