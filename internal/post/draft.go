package post

import "time"

// Draft is an entry in the local draft index: one post file on disk
// plus the metadata the list view shows. The file itself stays the
// source of truth for content; the index only tracks what is needed to
// list, open, and send drafts.
type Draft struct {
	ID        string
	Title     string
	Path      string
	Category  string
	Converted bool // file carries the Markdown extension and is converted on send
	CreatedAt time.Time
	UpdatedAt time.Time
	SentAt    *time.Time
}

// Sent reports whether the draft was ever submitted.
func (d Draft) Sent() bool {
	return d.SentAt != nil
}

// SendRecord is one entry in the submission history.
type SendRecord struct {
	ID        string
	DraftID   *string // nil once the draft is deleted
	Title     string
	Recipient string
	Converted bool
	SentAt    time.Time
}
