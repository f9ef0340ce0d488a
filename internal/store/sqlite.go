package store

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/mailpost/internal/post"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// scanDraft scans a draft row from a sqlx.Rows result set. Column
// order follows the migrated schema: category was added by a later
// migration, so it comes last.
func scanDraft(rows *sqlx.Rows) (post.Draft, error) {
	var (
		d         post.Draft
		converted int
		sentAt    *time.Time
	)

	err := rows.Scan(
		&d.ID, &d.Title, &d.Path, &converted,
		&d.CreatedAt, &d.UpdatedAt, &sentAt,
		&d.Category,
	)
	if err != nil {
		return post.Draft{}, fmt.Errorf("scanning draft row: %w", err)
	}

	d.Converted = converted != 0
	d.SentAt = sentAt

	return d, nil
}

// scanSend scans a send-history row from a sqlx.Rows result set.
func scanSend(rows *sqlx.Rows) (post.SendRecord, error) {
	var (
		rec       post.SendRecord
		draftID   *string
		converted int
	)

	err := rows.Scan(
		&rec.ID, &draftID, &rec.Title, &rec.Recipient,
		&converted, &rec.SentAt,
	)
	if err != nil {
		return post.SendRecord{}, fmt.Errorf("scanning send row: %w", err)
	}

	rec.DraftID = draftID
	rec.Converted = converted != 0

	return rec, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
