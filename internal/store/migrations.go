package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS drafts (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	path       TEXT NOT NULL UNIQUE,
	converted  INTEGER NOT NULL DEFAULT 0 CHECK(converted IN (0, 1)),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	sent_at    DATETIME
);

CREATE TABLE IF NOT EXISTS sends (
	id         TEXT PRIMARY KEY,
	draft_id   TEXT REFERENCES drafts(id) ON DELETE SET NULL,
	title      TEXT NOT NULL,
	recipient  TEXT NOT NULL,
	converted  INTEGER NOT NULL DEFAULT 0 CHECK(converted IN (0, 1)),
	sent_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_drafts_updated_at ON drafts(updated_at);
CREATE INDEX IF NOT EXISTS idx_drafts_sent_at ON drafts(sent_at);
CREATE INDEX IF NOT EXISTS idx_sends_sent_at ON sends(sent_at);
CREATE INDEX IF NOT EXISTS idx_sends_draft_id ON sends(draft_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
ALTER TABLE drafts ADD COLUMN category TEXT NOT NULL DEFAULT '';

CREATE INDEX IF NOT EXISTS idx_drafts_category ON drafts(category);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
