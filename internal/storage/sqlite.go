package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (unixepoch())
)`

// SQLite is a Store backed by a single SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path. An empty path
// or ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &Error{Op: "open", Cause: err}
	}
	// One connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, &Error{Op: "migrate", Cause: err}
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	query := fmt.Sprintf(`SELECT key, value FROM kv_store WHERE key IN (%s)`, placeholders(len(keys)))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &Error{Op: "get", Cause: err}
	}
	defer rows.Close()
	return collect(rows, out, "get")
}

func (s *SQLite) Set(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &Error{Op: "set", Cause: err}
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, unixepoch())
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if err != nil {
		return &Error{Op: "set", Cause: err}
	}
	defer stmt.Close()

	for k, v := range entries {
		if _, err := stmt.ExecContext(ctx, k, v); err != nil {
			return &Error{Op: "set", Cause: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &Error{Op: "set", Cause: err}
	}
	return nil
}

func (s *SQLite) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	query := fmt.Sprintf(`DELETE FROM kv_store WHERE key IN (%s)`, placeholders(len(keys)))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return &Error{Op: "remove", Cause: err}
	}
	return nil
}

func (s *SQLite) Scan(ctx context.Context, prefix string) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM kv_store WHERE substr(key, 1, length(?1)) = ?1`, prefix)
	if err != nil {
		return nil, &Error{Op: "scan", Cause: err}
	}
	defer rows.Close()
	return collect(rows, make(map[string][]byte), "scan")
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func collect(rows *sql.Rows, out map[string][]byte, op string) (map[string][]byte, error) {
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, &Error{Op: op, Cause: err}
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: op, Cause: err}
	}
	return out, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
