package store

import (
	"database/sql"
	"errors"
)

// GetSessionValue retrieves a serialized session field by key.
// Returns empty string if the key doesn't exist.
func (s *Store) GetSessionValue(key string) (string, error) {
	row := s.db.QueryRow(`SELECT value FROM session_state WHERE key = ?`, key)

	var value string
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetSessionValue stores a serialized session field.
func (s *Store) SetSessionValue(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO session_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// ClearSession drops every session field.
func (s *Store) ClearSession() error {
	_, err := s.db.Exec(`DELETE FROM session_state`)
	return err
}
