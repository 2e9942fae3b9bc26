package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

const schemaCollections = `
CREATE TABLE IF NOT EXISTS collections (
	name TEXT PRIMARY KEY,
	body TEXT NOT NULL
);`

// SQLiteDocs is an embedded database holding every collection as one JSON
// document per row.
type SQLiteDocs struct {
	DB *sql.DB
}

func OpenSQLite(path string) (*SQLiteDocs, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	// one writer at a time, SQLite would return SQLITE_BUSY otherwise
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaCollections); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteDocs{DB: db}, nil
}

func (s *SQLiteDocs) Close() error { return s.DB.Close() }

type SQLiteCollection[T any] struct {
	mu   sync.Mutex
	db   *sql.DB
	name string
}

// NewSQLiteCollection registers the named collection, starting it empty
// if it is new.
func NewSQLiteCollection[T any](docs *SQLiteDocs, name string) (*SQLiteCollection[T], error) {
	_, err := docs.DB.Exec(`INSERT OR IGNORE INTO collections (name, body) VALUES (?, '[]')`, name)
	if err != nil {
		return nil, err
	}
	return &SQLiteCollection[T]{db: docs.DB, name: name}, nil
}

func (c *SQLiteCollection[T]) LoadAll(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx, c.db)
}

func (c *SQLiteCollection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, c.name, err)
	}
	defer tx.Rollback()

	recs, err := c.load(ctx, tx)
	if err != nil {
		return err
	}
	next, err := fn(recs)
	if err != nil {
		return err
	}
	if next == nil {
		next = []T{}
	}
	body, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE collections SET body = ? WHERE name = ?`, string(body), c.name); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, c.name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, c.name, err)
	}
	slog.Debug("collection written", "collection", c.name, "records", len(next))
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (c *SQLiteCollection[T]) load(ctx context.Context, q queryRower) ([]T, error) {
	var body string
	err := q.QueryRowContext(ctx, `SELECT body FROM collections WHERE name = ?`, c.name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: collection %s is missing", ErrUnavailable, c.name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, c.name, err)
	}
	var recs []T
	if err := json.Unmarshal([]byte(body), &recs); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, c.name, err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}
