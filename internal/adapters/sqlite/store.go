// Package sqlite stores settings profiles in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/localsettings/pkg/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	account    TEXT PRIMARY KEY,
	settings   TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Store implements ports.SettingsStore on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps :memory: databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save upserts the snapshot of an account.
func (s *Store) Save(ctx context.Context, account string, settings domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (account, settings, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(account) DO UPDATE SET settings = excluded.settings, updated_at = excluded.updated_at
	`, account, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Load retrieves the snapshot of an account.
func (s *Store) Load(ctx context.Context, account string) (domain.Settings, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT settings FROM profiles WHERE account = ?`, account).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Settings{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to load profile: %w", err)
	}

	settings := domain.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return settings, nil
}

// Delete removes the profile of an account.
func (s *Store) Delete(ctx context.Context, account string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE account = ?`, account); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// List returns the stored accounts in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT account FROM profiles ORDER BY account`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	accounts := []string{}
	for rows.Next() {
		var account string
		if err := rows.Scan(&account); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
