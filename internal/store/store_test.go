package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nhle/mailpost/internal/post"
	"github.com/nhle/mailpost/internal/store"
	"github.com/nhle/mailpost/tests/testutil"
)

func TestUpsertDraftKeepsIdentity(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	d := post.Draft{Path: "/posts/first-post.post"}
	if err := s.UpsertDraft(ctx, d); err != nil {
		t.Fatalf("UpsertDraft() error = %v", err)
	}

	got, err := s.GetDraftByPath(ctx, d.Path)
	if err != nil {
		t.Fatalf("GetDraftByPath() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetDraftByPath() = nil, want draft")
	}
	if got.Title != "first-post" {
		t.Errorf("Title = %q, want stem %q", got.Title, "first-post")
	}
	if got.ID == "" {
		t.Error("ID not generated")
	}

	// Upserting the same path updates metadata but keeps the row.
	update := post.Draft{
		Path:     d.Path,
		Title:    "First Post",
		Category: "golang",
	}
	if err := s.UpsertDraft(ctx, update); err != nil {
		t.Fatalf("UpsertDraft() update error = %v", err)
	}

	after, err := s.GetDraftByPath(ctx, d.Path)
	if err != nil {
		t.Fatalf("GetDraftByPath() error = %v", err)
	}
	if after.ID != got.ID {
		t.Errorf("ID changed on upsert: %q -> %q", got.ID, after.ID)
	}
	if after.Title != "First Post" || after.Category != "golang" {
		t.Errorf("metadata not updated: %+v", after)
	}
	if !after.CreatedAt.Equal(got.CreatedAt) {
		t.Errorf("CreatedAt changed on upsert: %v -> %v", got.CreatedAt, after.CreatedAt)
	}
}

func TestGetDraftByPathMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	got, err := s.GetDraftByPath(context.Background(), "/posts/nope.post")
	if err != nil {
		t.Fatalf("GetDraftByPath() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetDraftByPath() = %+v, want nil", got)
	}
}

func TestGetDraftsFilter(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, d := range []post.Draft{
		{Path: "/posts/alpha.post", Title: "Alpha", Category: "golang"},
		{Path: "/posts/beta.post.md", Title: "Beta", Category: "life", Converted: true},
		{Path: "/posts/gamma.post", Title: "Gamma", Category: "golang"},
	} {
		if err := s.UpsertDraft(ctx, d); err != nil {
			t.Fatalf("UpsertDraft(%s) error = %v", d.Path, err)
		}
	}

	gamma, err := s.GetDraftByPath(ctx, "/posts/gamma.post")
	if err != nil {
		t.Fatalf("GetDraftByPath() error = %v", err)
	}
	if err := s.MarkDraftSent(ctx, gamma.ID, time.Now()); err != nil {
		t.Fatalf("MarkDraftSent() error = %v", err)
	}

	titles := func(filter store.DraftFilter) []string {
		t.Helper()
		drafts, err := s.GetDrafts(ctx, filter)
		if err != nil {
			t.Fatalf("GetDrafts(%+v) error = %v", filter, err)
		}
		var out []string
		for _, d := range drafts {
			out = append(out, d.Title)
		}
		return out
	}

	// Sent drafts are hidden by default.
	got := titles(store.DraftFilter{SortBy: "title"})
	if diff := cmp.Diff([]string{"Alpha", "Beta"}, got); diff != "" {
		t.Errorf("default filter mismatch (-want +got):\n%s", diff)
	}

	got = titles(store.DraftFilter{IncludeSent: true, SortBy: "title"})
	if diff := cmp.Diff([]string{"Alpha", "Beta", "Gamma"}, got); diff != "" {
		t.Errorf("IncludeSent mismatch (-want +got):\n%s", diff)
	}

	category := "golang"
	got = titles(store.DraftFilter{Category: &category, IncludeSent: true, SortBy: "title"})
	if diff := cmp.Diff([]string{"Alpha", "Gamma"}, got); diff != "" {
		t.Errorf("category filter mismatch (-want +got):\n%s", diff)
	}

	query := "bet"
	got = titles(store.DraftFilter{Query: &query})
	if diff := cmp.Diff([]string{"Beta"}, got); diff != "" {
		t.Errorf("query filter mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkDraftSent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	d := post.Draft{Path: "/posts/done.post", Title: "Done"}
	if err := s.UpsertDraft(ctx, d); err != nil {
		t.Fatalf("UpsertDraft() error = %v", err)
	}
	row, err := s.GetDraftByPath(ctx, d.Path)
	if err != nil {
		t.Fatalf("GetDraftByPath() error = %v", err)
	}

	at := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	if err := s.MarkDraftSent(ctx, row.ID, at); err != nil {
		t.Fatalf("MarkDraftSent() error = %v", err)
	}

	after, err := s.GetDraftByPath(ctx, d.Path)
	if err != nil {
		t.Fatalf("GetDraftByPath() error = %v", err)
	}
	if !after.Sent() {
		t.Fatal("Sent() = false after MarkDraftSent")
	}
	if !after.SentAt.Equal(at) {
		t.Errorf("SentAt = %v, want %v", after.SentAt, at)
	}

	if err := s.MarkDraftSent(ctx, "missing-id", at); err == nil {
		t.Error("expected error marking unknown draft, got nil")
	}
}

func TestDeleteDraft(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.UpsertDraft(ctx, post.Draft{Path: "/posts/x.post"}); err != nil {
		t.Fatalf("UpsertDraft() error = %v", err)
	}
	row, err := s.GetDraftByPath(ctx, "/posts/x.post")
	if err != nil {
		t.Fatalf("GetDraftByPath() error = %v", err)
	}

	if err := s.DeleteDraft(ctx, row.ID); err != nil {
		t.Fatalf("DeleteDraft() error = %v", err)
	}
	if err := s.DeleteDraft(ctx, row.ID); err == nil {
		t.Error("expected error deleting twice, got nil")
	}
}

func TestSyncDrafts(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	write := func(name string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("content\n"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		return path
	}

	alpha := write("alpha.post")
	write("beta.post.md")
	write("notes.txt") // not a draft

	added, removed, err := s.SyncDrafts(ctx, dir)
	if err != nil {
		t.Fatalf("SyncDrafts() error = %v", err)
	}
	if added != 2 || removed != 0 {
		t.Errorf("SyncDrafts() = (%d, %d), want (2, 0)", added, removed)
	}

	beta, err := s.GetDraftByPath(ctx, filepath.Join(dir, "beta.post.md"))
	if err != nil {
		t.Fatalf("GetDraftByPath() error = %v", err)
	}
	if beta == nil || !beta.Converted {
		t.Errorf("beta draft = %+v, want Converted", beta)
	}
	if beta.Title != "beta" {
		t.Errorf("beta Title = %q, want stem %q", beta.Title, "beta")
	}

	// A second pass is a no-op.
	added, removed, err = s.SyncDrafts(ctx, dir)
	if err != nil {
		t.Fatalf("SyncDrafts() error = %v", err)
	}
	if added != 0 || removed != 0 {
		t.Errorf("second SyncDrafts() = (%d, %d), want (0, 0)", added, removed)
	}

	// Deleting a file and adding another reconciles both ways.
	if err := os.Remove(alpha); err != nil {
		t.Fatalf("removing alpha: %v", err)
	}
	write("gamma.post")

	added, removed, err = s.SyncDrafts(ctx, dir)
	if err != nil {
		t.Fatalf("SyncDrafts() error = %v", err)
	}
	if added != 1 || removed != 1 {
		t.Errorf("third SyncDrafts() = (%d, %d), want (1, 1)", added, removed)
	}
}

func TestSendHistory(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"Oldest", "Middle", "Newest"} {
		rec := post.SendRecord{
			Title:     title,
			Recipient: "post@example.com",
			SentAt:    base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.RecordSend(ctx, rec); err != nil {
			t.Fatalf("RecordSend(%s) error = %v", title, err)
		}
	}

	records, err := s.GetSends(ctx, 0)
	if err != nil {
		t.Fatalf("GetSends() error = %v", err)
	}
	var titles []string
	for _, rec := range records {
		titles = append(titles, rec.Title)
	}
	if diff := cmp.Diff([]string{"Newest", "Middle", "Oldest"}, titles); diff != "" {
		t.Errorf("GetSends() order mismatch (-want +got):\n%s", diff)
	}

	limited, err := s.GetSends(ctx, 1)
	if err != nil {
		t.Fatalf("GetSends(1) error = %v", err)
	}
	if len(limited) != 1 || limited[0].Title != "Newest" {
		t.Errorf("GetSends(1) = %+v, want only Newest", limited)
	}
}
