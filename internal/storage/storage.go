// Package storage provides the key/value persistence shared by the answer
// cache and any other state the tool keeps between runs.
package storage

import (
	"context"
	"fmt"
)

// Store is an asynchronous-style key/value primitive. Every method may fail
// with a *Error; callers decide whether the failure is fatal.
type Store interface {
	// Get returns the values present for keys. Missing keys are absent from
	// the result.
	Get(ctx context.Context, keys []string) (map[string][]byte, error)
	// Set upserts every entry in one round trip.
	Set(ctx context.Context, entries map[string][]byte) error
	// Remove deletes keys. Unknown keys are ignored.
	Remove(ctx context.Context, keys []string) error
	// Scan returns every entry whose key starts with prefix.
	Scan(ctx context.Context, prefix string) (map[string][]byte, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config selects and configures a backend.
type Config struct {
	Backend     string
	SQLitePath  string
	DatabaseURL string
}

// Error wraps a failure of the underlying store.
type Error struct {
	Op    string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Open creates the configured store.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendPostgres:
		p, err := ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
