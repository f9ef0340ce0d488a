// Package contracts/store defines the local draft index interface.
// The post files on disk stay the source of truth for content; the
// index only carries what the list view and the history need. Single
// writer: the interactive user is the only thing mutating the posts
// directory.
//
// Library: jmoiron/sqlx + modernc.org/sqlite (WAL, ordered migrations)
package contracts

import (
	"context"
	"time"
)

// Draft is one indexed post file.
type Draft struct {
	ID        string // UUID
	Title     string
	Path      string // absolute path, unique
	Category  string
	Converted bool // Markdown extension, converted on send
	CreatedAt time.Time
	UpdatedAt time.Time
	SentAt    *time.Time // nil until first submitted
}

// SendRecord is one entry in the submission history. A local log of
// what was handed to the mailer, not a delivery report.
type SendRecord struct {
	ID        string
	DraftID   *string // nil once the draft is deleted
	Title     string
	Recipient string
	Converted bool
	SentAt    time.Time
}

// DraftFilter controls filtering and ordering of draft queries.
type DraftFilter struct {
	Query       *string // matches title and path
	Category    *string
	IncludeSent bool
	SortBy      string // title | category | created_at | updated_at | sent_at
	SortDesc    bool
	Limit       int
	Offset      int
}

// Store persists the draft index and the submission history.
type Store interface {
	UpsertDraft(ctx context.Context, d Draft) error
	GetDrafts(ctx context.Context, filter DraftFilter) ([]Draft, error)
	GetDraftByPath(ctx context.Context, path string) (*Draft, error)
	DeleteDraft(ctx context.Context, id string) error
	MarkDraftSent(ctx context.Context, id string, at time.Time) error

	// SyncDrafts reconciles the index against the post files in dir:
	// unknown files gain rows, rows whose file vanished are pruned.
	SyncDrafts(ctx context.Context, dir string) (added, removed int, err error)

	RecordSend(ctx context.Context, rec SendRecord) error
	GetSends(ctx context.Context, limit int) ([]SendRecord, error)
}
