package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tejaworks/interndesk/internal/pkg/metrics"
	_ "modernc.org/sqlite"
)

// SQLite is a file-backed Store implementation over a single key-value table.
// It gives the process a durable local file analogous to the browser storage
// the original frontend persisted into.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) the store database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create store schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Get returns the value at key or ErrKeyNotFound.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.StoreOperations.WithLabelValues("get", "miss").Inc()
			return nil, ErrKeyNotFound
		}
		metrics.StoreOperations.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("get %q: %w", key, err)
	}

	metrics.StoreOperations.WithLabelValues("get", "ok").Inc()
	return value, nil
}

// Set stores value at key, replacing any previous value.
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		metrics.StoreOperations.WithLabelValues("set", "error").Inc()
		return fmt.Errorf("set %q: %w", key, err)
	}

	metrics.StoreOperations.WithLabelValues("set", "ok").Inc()
	return nil
}

// Delete removes the value at key. Deleting an absent key is not an error.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		metrics.StoreOperations.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("delete %q: %w", key, err)
	}

	metrics.StoreOperations.WithLabelValues("delete", "ok").Inc()
	return nil
}

// Ping checks the underlying database connection. Used by the readiness probe.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
