package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Postgres is a Store backed by a PostgreSQL table, for deployments that
// share answers between machines.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the table exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, &Error{Op: "connect", Cause: fmt.Errorf("database URL is empty")}
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &Error{Op: "connect", Cause: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &Error{Op: "ping", Cause: err}
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, &Error{Op: "migrate", Cause: err}
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Get(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	rows, err := p.pool.Query(ctx, `SELECT key, value FROM kv_store WHERE key = ANY($1)`, keys)
	if err != nil {
		return nil, &Error{Op: "get", Cause: err}
	}
	return p.collect(rows, out, "get")
}

// Set sends every upsert in a single batch.
func (p *Postgres) Set(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for k, v := range entries {
		batch.Queue(
			`INSERT INTO kv_store (key, value) VALUES ($1, $2)
			 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
			k, v,
		)
	}
	if err := p.pool.SendBatch(ctx, batch).Close(); err != nil {
		return &Error{Op: "set", Cause: err}
	}
	return nil
}

func (p *Postgres) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := p.pool.Exec(ctx, `DELETE FROM kv_store WHERE key = ANY($1)`, keys); err != nil {
		return &Error{Op: "remove", Cause: err}
	}
	return nil
}

func (p *Postgres) Scan(ctx context.Context, prefix string) (map[string][]byte, error) {
	rows, err := p.pool.Query(ctx, `SELECT key, value FROM kv_store WHERE starts_with(key, $1)`, prefix)
	if err != nil {
		return nil, &Error{Op: "scan", Cause: err}
	}
	return p.collect(rows, make(map[string][]byte), "scan")
}

func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Postgres) collect(rows pgx.Rows, out map[string][]byte, op string) (map[string][]byte, error) {
	defer rows.Close()
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
