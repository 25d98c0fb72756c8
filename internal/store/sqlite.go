package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/DaanHessen/jterm/internal/engine"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS region_progress (
		region     TEXT PRIMARY KEY,
		level      INTEGER NOT NULL CHECK (level BETWEEN 0 AND 5),
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`,
}

// SQLiteStore keeps progress in a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, wrap(err, "create data dir")
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, wrap(err, "open sqlite")
	}
	db.SetMaxOpenConns(1)
	s := &SQLiteStore{db: db}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return wrap(err, "ensure schema")
		}
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (engine.Progress, error) {
	var rows []regionProgress
	if err := s.db.SelectContext(ctx, &rows, `SELECT region, level FROM region_progress`); err != nil {
		return nil, wrap(err, "load progress")
	}
	return progressFromRows(rows)
}

// Save replaces all rows in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, p engine.Progress) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrap(err, "begin")
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM region_progress`); err != nil {
		return wrap(err, "clear progress")
	}
	for _, r := range rowsFromProgress(p) {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO region_progress(region, level) VALUES (:region, :level)`, r); err != nil {
			return wrap(err, "insert progress")
		}
	}
	return wrap(tx.Commit(), "commit progress")
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
