// ABOUTME: SQLite database schema for note storage
// ABOUTME: Notes table with serialized embedding column and timestamps
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Notes table: embedding is the serialized vector for content,
-- empty string when not yet embedded
CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    embedding TEXT NOT NULL DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
