package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS objects (
	collection TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
	PRIMARY KEY (collection, key)
);`

// SQLite keeps every collection in one table of a SQLite database file and
// maps View/Update onto database transactions.
type SQLite struct {
	db     *sql.DB
	path   string
	closed atomic.Bool
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the database at path.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure data dir: %w", err)
	}
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection serializes writers and avoids SQLITE_BUSY within the process.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Join(fmt.Errorf("store: schema apply failed"), err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Path is the database file.
func (s *SQLite) Path() string { return s.path }

// Close closes the database.
func (s *SQLite) Close() error {
	s.closed.Store(true)
	return s.db.Close()
}

func (s *SQLite) View(ctx context.Context, fn func(tx Tx) error) error {
	return s.run(ctx, true, fn)
}

func (s *SQLite) Update(ctx context.Context, fn func(tx Tx) error) error {
	return s.run(ctx, false, fn)
}

func (s *SQLite) run(ctx context.Context, readOnly bool, fn func(tx Tx) error) error {
	if s.closed.Load() {
		return ErrClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&sqliteTx{ctx: ctx, tx: tx, readOnly: readOnly}); err != nil {
		return err
	}
	if readOnly {
		return nil
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

type sqliteTx struct {
	ctx      context.Context
	tx       *sql.Tx
	readOnly bool
}

func (t *sqliteTx) Get(collection, key string, v any) error {
	if err := validate(collection, key); err != nil {
		return err
	}
	var data []byte
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT value FROM objects WHERE collection = ? AND key = ?`, collection, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: read %s/%s: %w", collection, key, err)
	}
	return decode(collection, key, data, v)
}

func (t *sqliteTx) Put(collection, key string, v any) error {
	if t.readOnly {
		return ErrReadOnly
	}
	data, err := encode(collection, key, v)
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(t.ctx, `
		INSERT INTO objects (collection, key, value) VALUES (?, ?, ?)
		ON CONFLICT (collection, key) DO UPDATE
		SET value = excluded.value, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
	`, collection, key, data)
	if err != nil {
		return fmt.Errorf("store: write %s/%s: %w", collection, key, err)
	}
	return nil
}

func (t *sqliteTx) Delete(collection, key string) error {
	if t.readOnly {
		return ErrReadOnly
	}
	if err := validate(collection, key); err != nil {
		return err
	}
	if _, err := t.tx.ExecContext(t.ctx,
		`DELETE FROM objects WHERE collection = ? AND key = ?`, collection, key); err != nil {
		return fmt.Errorf("store: erase %s/%s: %w", collection, key, err)
	}
	return nil
}

func (t *sqliteTx) Keys(collection string) ([]string, error) {
	rows, err := t.tx.QueryContext(t.ctx,
		`SELECT key FROM objects WHERE collection = ? ORDER BY key`, collection)
	if err != nil {
		return nil, fmt.Errorf("store: keys %s: %w", collection, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
