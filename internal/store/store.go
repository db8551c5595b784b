package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/stack/internal/supabase"
)

//go:embed schema.sql
var schemaSQL string

// SessionStore persists the Supabase session in a SQLite database. It
// implements supabase.SessionStore.
type SessionStore struct {
	db *sql.DB
}

// Open creates or opens the session database at the given path and applies
// pragmas and schema. Idempotent.
func Open(path string) (*SessionStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent use.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &SessionStore{db: db}, nil
}

// Close closes the database.
func (s *SessionStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LoadSession returns the persisted session, or (nil, nil) when none is
// stored.
func (s *SessionStore) LoadSession() (*supabase.Session, error) {
	row := s.db.QueryRow(`SELECT access_token, refresh_token, user_id, email FROM sessions WHERE id = 1`)

	var session supabase.Session
	var rawUserID string
	err := row.Scan(&session.AccessToken, &session.RefreshToken, &rawUserID, &session.User.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: load session: %w", err)
	}

	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("store: corrupt user id %q: %w", rawUserID, err)
	}
	session.User.ID = userID
	return &session, nil
}

// Save replaces the persisted session.
func (s *SessionStore) Save(session supabase.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (id, access_token, refresh_token, user_id, email)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			access_token  = excluded.access_token,
			refresh_token = excluded.refresh_token,
			user_id       = excluded.user_id,
			email         = excluded.email`,
		session.AccessToken, session.RefreshToken, session.User.ID.String(), session.User.Email,
	)
	if err != nil {
		return fmt.Errorf("store: save session: %w", err)
	}
	return nil
}

// Clear removes the persisted session, if any.
func (s *SessionStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = 1`); err != nil {
		return fmt.Errorf("store: clear session: %w", err)
	}
	return nil
}
