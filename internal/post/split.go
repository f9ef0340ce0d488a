package post

import "strings"

// Split is the result of dividing post text at the cutoff marker line.
type Split struct {
	// Head is the content before the boundary.
	Head string

	// Tail is everything after the removed line.
	Tail string

	// Offset is the byte offset of the boundary, i.e. the start of the
	// removed line.
	Offset int

	// Found reports whether the marker line was present.
	Found bool
}

// SplitAtMarker scans text for the first line exactly equal to marker
// and splits around it. The marker line itself, terminator included, is
// consumed and appears in neither half.
//
// When the marker is absent the boundary stays at the very start and the
// line delete still fires there, so the first line of text is consumed
// anyway. Longstanding behavior from the editor-macro days; callers
// check Found and warn instead of papering over it.
func SplitAtMarker(text, marker string) Split {
	offset := 0
	rest := text
	for {
		line, remainder, more := strings.Cut(rest, "\n")
		if line == marker {
			return Split{
				Head:   text[:offset],
				Tail:   remainder,
				Offset: offset,
				Found:  true,
			}
		}
		if !more {
			break
		}
		offset += len(line) + 1
		rest = remainder
	}

	_, tail, _ := strings.Cut(text, "\n")
	return Split{Tail: tail}
}
