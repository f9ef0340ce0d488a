package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/mailpost/internal/post"
)

// RecordSend appends one submission to the history. Generates a UUID
// if ID is empty and defaults SentAt to now.
func (s *SQLiteStore) RecordSend(ctx context.Context, rec post.SendRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.SentAt.IsZero() {
		rec.SentAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sends (id, draft_id, title, recipient, converted, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.DraftID, rec.Title, rec.Recipient,
		boolToInt(rec.Converted), rec.SentAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording send: %w", err)
	}
	return nil
}

// GetSends returns submissions newest first, up to limit (0 means all).
func (s *SQLiteStore) GetSends(
	ctx context.Context,
	limit int,
) ([]post.SendRecord, error) {
	query := "SELECT * FROM sends ORDER BY sent_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying sends: %w", err)
	}
	defer rows.Close()

	var records []post.SendRecord
	for rows.Next() {
		rec, err := scanSend(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
