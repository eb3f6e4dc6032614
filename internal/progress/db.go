// Package progress provides SQLite-based challenge completion storage.
package progress

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for progress storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS completed (
		id TEXT PRIMARY KEY,
		completed_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// MarkCompleted records a challenge as done. Repeat completions keep the
// first timestamp.
func (db *DB) MarkCompleted(id string) error {
	res, err := db.conn.Exec(
		"INSERT OR IGNORE INTO completed (id, completed_at) VALUES (?, ?)",
		id, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("mark completed %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Info("challenge completed", "id", id)
	}
	return nil
}

// Completed returns the set of completed challenge IDs.
func (db *DB) Completed() (map[string]bool, error) {
	var ids []string
	if err := db.conn.Select(&ids, "SELECT id FROM completed"); err != nil {
		return nil, fmt.Errorf("load completed: %w", err)
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// IsCompleted reports whether a single challenge has been done.
func (db *DB) IsCompleted(id string) (bool, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM completed WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("check completed %q: %w", id, err)
	}
	return n > 0, nil
}

// Reset wipes all recorded completions.
func (db *DB) Reset() error {
	if _, err := db.conn.Exec("DELETE FROM completed"); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	slog.Info("progress reset")
	return nil
}

// SetMeta stores a key-value pair.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
