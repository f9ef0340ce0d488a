package store

import (
	"context"
	"time"

	"github.com/nhle/mailpost/internal/post"
)

// DraftFilter controls filtering, sorting, and pagination for draft
// queries.
type DraftFilter struct {
	Query       *string // search title + path
	Category    *string
	IncludeSent bool   // include drafts that were already submitted
	SortBy      string // "title", "category", "created_at", "updated_at", "sent_at"
	SortDesc    bool
	Limit       int
	Offset      int
}

// Store defines the persistence interface for the draft index and the
// submission history.
type Store interface {
	// === Drafts ===

	UpsertDraft(ctx context.Context, d post.Draft) error
	GetDrafts(ctx context.Context, filter DraftFilter) ([]post.Draft, error)
	GetDraftByPath(ctx context.Context, path string) (*post.Draft, error)
	DeleteDraft(ctx context.Context, id string) error
	MarkDraftSent(ctx context.Context, id string, at time.Time) error

	// SyncDrafts reconciles the index against the post files in dir:
	// files without an index row are added, rows whose file vanished
	// are removed. It reports how many rows changed either way.
	SyncDrafts(ctx context.Context, dir string) (added, removed int, err error)

	// === Send history ===

	RecordSend(ctx context.Context, rec post.SendRecord) error
	GetSends(ctx context.Context, limit int) ([]post.SendRecord, error)
}
