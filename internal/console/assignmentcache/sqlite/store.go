// Package sqlite implements assignment record storage in a local SQLite file
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vidwall/vidwall-console/internal/console/assignmentcache"
)

const schema = `
CREATE TABLE IF NOT EXISTS assignment_records (
	group_id   TEXT PRIMARY KEY,
	record     TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Store implements assignmentcache.Store on a SQLite database
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a SQLite-backed store at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening assignment store: %w", err)
	}
	return NewStore(db)
}

// NewStore wraps an existing database handle, ensuring the schema exists
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("error creating assignment store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Get retrieves the record for a group
func (s *Store) Get(ctx context.Context, groupID string) (*assignmentcache.Record, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM assignment_records WHERE group_id = ?`, groupID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, assignmentcache.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading assignment record: %w", err)
	}

	var record assignmentcache.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		// Unreadable rows are treated the same as missing ones so a
		// corrupt store never blocks the operator.
		return nil, assignmentcache.ErrNotFound
	}
	return &record, nil
}

// Put writes the record for a group, replacing any previous one
func (s *Store) Put(ctx context.Context, groupID string, record *assignmentcache.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error encoding assignment record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assignment_records (group_id, record, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(group_id) DO UPDATE SET
			record = excluded.record,
			updated_at = excluded.updated_at`,
		groupID, string(raw),
	)
	if err != nil {
		return fmt.Errorf("error writing assignment record: %w", err)
	}
	return nil
}

// Delete removes the record for a group
func (s *Store) Delete(ctx context.Context, groupID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM assignment_records WHERE group_id = ?`, groupID,
	); err != nil {
		return fmt.Errorf("error deleting assignment record: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
