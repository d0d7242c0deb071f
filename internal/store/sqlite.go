package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/defrec/defrec/internal/errors"
	"github.com/defrec/defrec/internal/index"
)

// SQLiteStore persists the index in a SQLite database. Entry order is
// carried by rowid, so load returns entries in the order they were
// saved.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore creates a SQLite store at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// open opens the database and applies connection settings.
func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, err
	}

	// Single writer keeps lock contention out of the picture.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	return db, nil
}

// Save replaces the persisted index inside one transaction, so a
// failed save leaves the previous index intact.
func (s *SQLiteStore) Save(idx *index.Index) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.IOError(fmt.Sprintf("cannot create index directory for %s", s.path), err)
	}

	db, err := s.open()
	if err != nil {
		return errors.IOError(fmt.Sprintf("cannot open index at %s", s.path), err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		path  TEXT NOT NULL UNIQUE,
		names TEXT NOT NULL
	)`); err != nil {
		return errors.IOError("cannot create index schema", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.IOError("cannot begin index transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return errors.IOError("cannot clear previous index", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO entries (path, names) VALUES (?, ?)`)
	if err != nil {
		return errors.IOError("cannot prepare index insert", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range idx.Entries {
		names, err := json.Marshal(e.Names)
		if err != nil {
			return errors.IOError(fmt.Sprintf("cannot encode names for %s", e.Path), err)
		}
		if _, err := stmt.Exec(e.Path, string(names)); err != nil {
			return errors.IOError(fmt.Sprintf("cannot insert entry for %s", e.Path), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.IOError("cannot commit index", err)
	}
	return nil
}

// Load reads the persisted index in saved order.
func (s *SQLiteStore) Load() (*index.Index, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, errors.NotFoundError(s.path)
	}

	db, err := s.open()
	if err != nil {
		return nil, errors.CorruptError(s.path, err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(`SELECT path, names FROM entries ORDER BY id`)
	if err != nil {
		return nil, errors.CorruptError(s.path, err)
	}
	defer func() { _ = rows.Close() }()

	idx := index.New()
	for rows.Next() {
		var path, encoded string
		if err := rows.Scan(&path, &encoded); err != nil {
			return nil, errors.CorruptError(s.path, err)
		}
		var names []string
		if err := json.Unmarshal([]byte(encoded), &names); err != nil {
			return nil, errors.CorruptError(s.path, err)
		}
		idx.Add(path, names)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.CorruptError(s.path, err)
	}
	return idx, nil
}

// Location returns the database file path.
func (s *SQLiteStore) Location() string {
	return s.path
}
