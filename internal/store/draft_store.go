package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/mailpost/internal/post"
)

// UpsertDraft inserts a draft or, when a row for the same path already
// exists, updates its metadata in place. Generates a UUID if ID is
// empty; created_at and sent_at survive upserts.
func (s *SQLiteStore) UpsertDraft(ctx context.Context, d post.Draft) error {
	if strings.TrimSpace(d.Path) == "" {
		return fmt.Errorf("draft path must not be empty")
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Title == "" {
		d.Title = post.DraftStem(d.Path)
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drafts (
			id, title, path, converted,
			created_at, updated_at, sent_at, category
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			converted  = excluded.converted,
			updated_at = excluded.updated_at,
			category   = excluded.category`,
		d.ID, d.Title, d.Path, boolToInt(d.Converted),
		d.CreatedAt, d.UpdatedAt, d.SentAt, d.Category,
	)
	if err != nil {
		return fmt.Errorf("upserting draft %s: %w", d.Path, err)
	}
	return nil
}

// GetDrafts retrieves drafts matching the filter.
func (s *SQLiteStore) GetDrafts(
	ctx context.Context,
	filter DraftFilter,
) ([]post.Draft, error) {
	var conditions []string
	var args []interface{}

	if !filter.IncludeSent {
		conditions = append(conditions, "sent_at IS NULL")
	}
	if filter.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR path LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := "SELECT * FROM drafts"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Determine sort column.
	sortBy := "updated_at"
	if filter.SortBy != "" {
		allowedSorts := map[string]bool{
			"title":      true,
			"category":   true,
			"created_at": true,
			"updated_at": true,
			"sent_at":    true,
		}
		if allowedSorts[filter.SortBy] {
			sortBy = filter.SortBy
		}
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	defer rows.Close()

	var drafts []post.Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}

	return drafts, rows.Err()
}

// GetDraftByPath retrieves a single draft by its file path. Returns
// (nil, nil) when the path is not indexed.
func (s *SQLiteStore) GetDraftByPath(
	ctx context.Context,
	path string,
) (*post.Draft, error) {
	var (
		d         post.Draft
		converted int
		sentAt    *time.Time
	)

	err := s.db.QueryRowxContext(ctx, "SELECT * FROM drafts WHERE path = ?", path).Scan(
		&d.ID, &d.Title, &d.Path, &converted,
		&d.CreatedAt, &d.UpdatedAt, &sentAt,
		&d.Category,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting draft %s: %w", path, err)
	}

	d.Converted = converted != 0
	d.SentAt = sentAt

	return &d, nil
}

// DeleteDraft removes a draft row by ID. The file on disk is not
// touched; send history rows keep their copy of the metadata.
func (s *SQLiteStore) DeleteDraft(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting draft %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("draft %s not found", id)
	}
	return nil
}

// MarkDraftSent stamps the draft as submitted at the given time.
func (s *SQLiteStore) MarkDraftSent(
	ctx context.Context,
	id string,
	at time.Time,
) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE drafts SET sent_at = ?, updated_at = ? WHERE id = ?",
		at.UTC(), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("marking draft %s sent: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("draft %s not found", id)
	}
	return nil
}

// SyncDrafts reconciles the index against the post files in dir.
// Files without an index row are added with their stem as a
// provisional title; rows pointing at vanished files are removed.
func (s *SQLiteStore) SyncDrafts(
	ctx context.Context,
	dir string,
) (added, removed int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("reading posts dir %s: %w", dir, err)
	}

	onDisk := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !post.IsDraftPath(entry.Name()) {
			continue
		}
		onDisk[filepath.Join(dir, entry.Name())] = true
	}

	known, err := s.GetDrafts(ctx, DraftFilter{IncludeSent: true})
	if err != nil {
		return 0, 0, err
	}

	indexed := make(map[string]bool, len(known))
	for _, d := range known {
		indexed[d.Path] = true
		if filepath.Dir(d.Path) != dir || onDisk[d.Path] {
			continue
		}
		if err := s.DeleteDraft(ctx, d.ID); err != nil {
			return added, removed, err
		}
		removed++
	}

	for path := range onDisk {
		if indexed[path] {
			continue
		}
		d := post.Draft{
			Title:     post.DraftStem(path),
			Path:      path,
			Converted: strings.HasSuffix(path, post.DraftExtMarkdown),
		}
		if err := s.UpsertDraft(ctx, d); err != nil {
			return added, removed, err
		}
		added++
	}

	return added, removed, nil
}
