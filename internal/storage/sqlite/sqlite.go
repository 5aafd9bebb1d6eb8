// Package sqlite provides a SQLite-backed implementation of the storage.Store
// interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/sharetab/sharetab/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// foreign_keys is a per-connection pragma; setting it in the DSN makes
	// the driver apply it to every connection the pool opens, not just the
	// one that happens to run a setup statement.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RunInTx runs fn inside a transaction, committing only when fn returns nil.
func (s *SQLiteStore) RunInTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&tx{ctx: ctx, tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// tx implements storage.Tx over a single *sql.Tx.
type tx struct {
	ctx context.Context
	tx  *sql.Tx
}

var _ storage.Tx = (*tx)(nil)

// nextID bumps a counter row and returns the new value. Runs inside the
// operation's transaction, so concurrent bumps cannot interleave.
func (t *tx) nextID(counter string) (uint64, error) {
	if _, err := t.tx.ExecContext(t.ctx,
		"UPDATE counters SET value = value + 1 WHERE name = ?", counter,
	); err != nil {
		return 0, fmt.Errorf("failed to bump counter %s: %w", counter, err)
	}

	var id uint64
	err := t.tx.QueryRowContext(t.ctx,
		"SELECT value FROM counters WHERE name = ?", counter,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", counter, err)
	}
	return id, nil
}

func (t *tx) NextGroupID() (uint64, error) {
	return t.nextID("group_count")
}

func (t *tx) NextExpenseID() (uint64, error) {
	return t.nextID("expense_count")
}
