// Package post holds the core domain for composing blog posts that are
// submitted by e-mail: the post record itself, the shortcode directive
// block understood by the receiving platform, the content/directive
// splitter, and title suggestion helpers.
package post

import "strings"

// statusToken is the substring whose presence marks a buffer as carrying
// a directive block. The builder always emits a full "[status draft]"
// line, but detection only requires the open bracket through the space so
// hand-edited status values still count.
const statusToken = "[status "

// Post pairs an editable content buffer with its title. The title is
// bound when the buffer is initialized as a post and becomes the mail
// subject on submission.
type Post struct {
	Title   string
	Content string
}

// Configured reports whether the post has been initialized: a bound
// title and a directive block in the content. An empty buffer is never
// configured.
func (p *Post) Configured() bool {
	return p.Title != "" && strings.Contains(p.Content, statusToken)
}

// AppendBlock appends block at the end of the content, starting it on
// its own line so directives are never glued to user text.
func (p *Post) AppendBlock(block string) {
	if p.Content != "" && !strings.HasSuffix(p.Content, "\n") {
		p.Content += "\n"
	}
	p.Content += block
}
