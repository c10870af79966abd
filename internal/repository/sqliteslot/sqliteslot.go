// Package sqliteslot stores durable slots as rows of a single table in a
// local SQLite database file.
package sqliteslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/entnt/dental-center/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	name TEXT PRIMARY KEY,
	payload BLOB NOT NULL
)`

// NewDB opens (creating if needed) the local database and ensures the slots
// table exists.
func NewDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create slots table: %w", err)
	}
	return db, nil
}

type Slot struct {
	db   *sqlx.DB
	name string
}

func New(db *sqlx.DB, name string) *Slot {
	return &Slot{db: db, name: name}
}

func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.GetContext(ctx, &payload, `SELECT payload FROM slots WHERE name = ?`, s.name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.name, err)
	}
	return payload, nil
}

// Write replaces the slot row in one statement; the database gives the
// all-or-nothing guarantee the file backend gets from rename.
func (s *Slot) Write(ctx context.Context, payload []byte) error {
	query := `
		INSERT INTO slots (name, payload) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload
	`
	if _, err := s.db.ExecContext(ctx, query, s.name, payload); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.name, err)
	}
	return nil
}

func (s *Slot) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, s.name); err != nil {
		return fmt.Errorf("failed to clear slot %s: %w", s.name, err)
	}
	return nil
}
