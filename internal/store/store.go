// Package store persists users and their expenses in a local SQLite database.
//
// Expense rows carry the owning user's id but the database does not enforce
// or cascade on it: deleting a user leaves its expenses in place, reachable
// only by their own ids. Per-user queries for an unknown id return empty
// results and zero sums.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/budgie/internal/model"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Store is a handle on the budget database. It is safe for use by one
// process; writes are serialised over a single connection.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database file at dbPath. Call EnsureSchema
// before the first query.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating database dir: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	log.Debug().Str("path", dbPath).Msg("database opened")
	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func dsn(path string) string {
	return path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
}

type rowScanner interface {
	Scan(dest ...any) error
}

// affectedOne maps an UPDATE or DELETE that touched no row to ErrNotFound.
func affectedOne(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return notFound(what, id)
	}
	return nil
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%w: %s %d", model.ErrNotFound, what, id)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
