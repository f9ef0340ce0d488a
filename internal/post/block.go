package post

import "strings"

// BlockOptions controls the directive block produced by ShortcodeBlock.
type BlockOptions struct {
	// Category is the blog category placed in the [category ...] line.
	Category string

	// Tags is the comma-separated tag list for the [tags ...] line.
	Tags string

	// CategoryIsTag appends the category to the tag list as well.
	CategoryIsTag bool

	// CutoffMarker, when non-empty, becomes the first line of the block.
	// It separates convertible content from the directives when an
	// external converter is configured.
	CutoffMarker string
}

// ShortcodeBlock builds the directive block appended to a freshly
// initialized post. Everything above the "-- " signature line is sent to
// the blog platform; the lines after it document the less common
// directives and are cut off before publishing.
func ShortcodeBlock(opts BlockOptions) string {
	tags := opts.Tags
	if opts.CategoryIsTag {
		tags += "," + opts.Category
	}

	var lines []string
	if opts.CutoffMarker != "" {
		lines = append(lines, opts.CutoffMarker)
	}
	lines = append(lines,
		"[category "+opts.Category+"]",
		"[tags "+tags+"]",
		"[status draft]",
		"-- ",
		`Anything after the signature line "-- " will not appear in the post.`,
		"Status can be publish, pending, or draft.",
		"[slug some-url-name]",
		"[excerpt]some excerpt[/excerpt]",
		"[delay +1 hour]",
		"[comments on | off]",
		"[password secret-password]",
	)

	return strings.Join(lines, "\n") + "\n"
}
