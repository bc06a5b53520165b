package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
	path string
}

func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{DB: db, path: dbPath}, nil
}

func (db *DB) Migrate() error {
	queries := []string{
		// Days table: id is the epoch day, date parts denormalized for
		// calendar queries
		`CREATE TABLE IF NOT EXISTS days (
			id INTEGER PRIMARY KEY,
			summary TEXT NOT NULL DEFAULT '',
			is_favorite INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			last_modified_at INTEGER NOT NULL,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			day_of_month INTEGER NOT NULL
		)`,

		// Locations table
		`CREATE TABLE IF NOT EXISTS locations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			last_used_at INTEGER NOT NULL,
			UNIQUE(lat, lon)
		)`,

		// Day<->Location join rows
		`CREATE TABLE IF NOT EXISTS location_entries (
			day_id INTEGER NOT NULL,
			location_id INTEGER NOT NULL,
			PRIMARY KEY (day_id, location_id),
			FOREIGN KEY (day_id) REFERENCES days(id) ON DELETE CASCADE,
			FOREIGN KEY (location_id) REFERENCES locations(id) ON DELETE CASCADE
		)`,

		// Tags table: name uniqueness is an application-level rule, not an index
		`CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			last_used_at INTEGER NOT NULL
		)`,

		// Day<->Tag join rows with optional per-entry content
		`CREATE TABLE IF NOT EXISTS tag_entries (
			day_id INTEGER NOT NULL,
			tag_id INTEGER NOT NULL,
			content TEXT,
			PRIMARY KEY (day_id, tag_id),
			FOREIGN KEY (day_id) REFERENCES days(id) ON DELETE CASCADE,
			FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
		)`,

		// Key-value settings
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Full-text shadow tables, kept in sync by the triggers below
		`CREATE VIRTUAL TABLE IF NOT EXISTS day_summary_fts USING fts5(day_id UNINDEXED, summary)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS tag_entry_fts USING fts5(day_id UNINDEXED, tag_id UNINDEXED, content)`,

		`CREATE TRIGGER IF NOT EXISTS days_fts_ai AFTER INSERT ON days BEGIN
			INSERT INTO day_summary_fts(day_id, summary) VALUES (new.id, new.summary);
		END`,
		`CREATE TRIGGER IF NOT EXISTS days_fts_au AFTER UPDATE ON days BEGIN
			UPDATE day_summary_fts SET summary = new.summary WHERE day_id = new.id;
		END`,
		`CREATE TRIGGER IF NOT EXISTS days_fts_ad AFTER DELETE ON days BEGIN
			DELETE FROM day_summary_fts WHERE day_id = old.id;
		END`,

		`CREATE TRIGGER IF NOT EXISTS tag_entries_fts_ai AFTER INSERT ON tag_entries BEGIN
			INSERT INTO tag_entry_fts(day_id, tag_id, content) VALUES (new.day_id, new.tag_id, COALESCE(new.content, ''));
		END`,
		`CREATE TRIGGER IF NOT EXISTS tag_entries_fts_au AFTER UPDATE ON tag_entries BEGIN
			UPDATE tag_entry_fts SET content = COALESCE(new.content, '')
			WHERE day_id = new.day_id AND tag_id = new.tag_id;
		END`,
		`CREATE TRIGGER IF NOT EXISTS tag_entries_fts_ad AFTER DELETE ON tag_entries BEGIN
			DELETE FROM tag_entry_fts WHERE day_id = old.day_id AND tag_id = old.tag_id;
		END`,

		// Indexes for performance
		`CREATE INDEX IF NOT EXISTS idx_days_calendar ON days(month, day_of_month)`,
		`CREATE INDEX IF NOT EXISTS idx_days_favorite ON days(is_favorite) WHERE is_favorite = 1`,
		`CREATE INDEX IF NOT EXISTS idx_location_entries_location ON location_entries(location_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tag_entries_tag ON tag_entries(tag_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// Path returns the on-disk location of the database file.
func (db *DB) Path() string {
	return db.path
}

// Checkpoint flushes the write-ahead log into the main database file, a
// prerequisite for copying the file to a backup destination. Calling it on
// an uninitialized store is a programming error and panics.
func (db *DB) Checkpoint() error {
	if db == nil || db.DB == nil {
		panic("database: checkpoint on uninitialized store")
	}
	if _, err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
