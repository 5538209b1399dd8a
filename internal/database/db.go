// Package database exposes one query interface over the two relational
// stores the server can run on: an embedded SQLite file for local use and a
// Postgres pool for deployments. Callers write SQL with '?' placeholders and
// never see which backend answers.
package database

import (
	"context"
	"fmt"
	"strings"
)

// Dialect names the SQL flavour spoken by a DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Result reports the outcome of a write. InsertedID is zero for statements
// that do not create a row with a generated id.
type Result struct {
	RowsAffected int64
	InsertedID   int64
}

// DB is the uniform adapter surface shared by every handler and repository.
type DB interface {
	// Exec runs a statement that does not return rows.
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	// QueryOne returns the first row, or nil when the query matched nothing.
	QueryOne(ctx context.Context, query string, args ...any) (Row, error)
	// QueryAll returns every row; an empty result is a non-nil empty slice.
	QueryAll(ctx context.Context, query string, args ...any) ([]Row, error)
	Dialect() Dialect
	Ping(ctx context.Context) error
	Close() error
}

// Config selects and tunes the backing store.
type Config struct {
	// DatabaseURL selects Postgres when non-empty.
	DatabaseURL string
	// SQLitePath is the database file used when DatabaseURL is empty.
	SQLitePath string
	Pool       PoolConfig
}

// Open connects to the store chosen by cfg and verifies the connection.
func Open(ctx context.Context, cfg Config) (DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		return OpenPostgres(ctx, cfg.DatabaseURL, cfg.Pool)
	}
	path := cfg.SQLitePath
	if path == "" {
		path = "kitesurfing.db"
	}
	return OpenSQLite(ctx, path)
}

// StoreError carries a failure raised by the underlying driver together with
// the adapter operation and statement that produced it.
type StoreError struct {
	Op    string
	Query string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op, query string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Query: query, Err: err}
}
