package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is written to PRAGMA user_version when a history file is
// created. Bump it together with schema.sql.
const schemaVersion = 1

// connParams are go-sqlite3 DSN options applied to every pooled connection:
// WAL journal, NORMAL sync, a 5s busy wait, and enforced foreign keys.
const connParams = "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on"

// ErrUnsupportedSchema is returned by Open when the history file was written
// by a newer casecheck.
var ErrUnsupportedSchema = errors.New("unsupported history schema")

// Store is the casecheck run history.
type Store struct {
	db *sql.DB
}

// Open opens the history file at path, creating it and its tables on first
// use. Opening an existing file is a no-op beyond the version check.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+connParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// A recorder and a history query never overlap within one process.
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ensureSchema creates the tables in an empty file and refuses files stamped
// with a version this build does not know.
func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	var version int
	if err := tx.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return fmt.Errorf("%w: file is version %d, this build reads up to %d", ErrUnsupportedSchema, version, schemaVersion)
	}

	if _, err := tx.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to stamp schema version: %w", err)
	}
	return tx.Commit()
}
