// ABOUTME: SQLite-backed store for capability completion progress, one set of checkbox IDs per key.
// ABOUTME: Mirrors the browser's localStorage entries so progress survives across machines.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrInvalidKey is returned for progress keys outside [A-Za-z0-9_.-]{1,64}.
var ErrInvalidKey = errors.New("invalid progress key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// ValidKey reports whether key may be used as a progress key.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Store keeps completed capability IDs per progress key.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the progress database at path, creating its parent
// directory when needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create progress dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			key TEXT NOT NULL,
			capability_id TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (key, capability_id)
		);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the completed capability IDs stored under key, sorted. An unknown
// key yields an empty list.
func (s *Store) Get(ctx context.Context, key string) ([]string, error) {
	if !ValidKey(key) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT capability_id FROM progress WHERE key = ? ORDER BY capability_id ASC", key)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan progress row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Put replaces the set stored under key with ids. Duplicates and empty IDs are dropped.
func (s *Store) Put(ctx context.Context, key string, ids []string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM progress WHERE key = ?", key); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}

	ts := s.now().UTC().Format(time.RFC3339)
	for _, id := range dedupe(ids) {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO progress (key, capability_id, updated_at) VALUES (?, ?, ?)",
			key, id, ts); err != nil {
			return fmt.Errorf("insert progress: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Keys returns every key that has stored progress, sorted.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT key FROM progress ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("query keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key row: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
