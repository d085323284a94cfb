package store

import (
	"database/sql"
	"errors"
)

// ErrNoAuth is returned when no authentication is stored
var ErrNoAuth = errors.New("no authentication stored")

// Auth holds the bearer token issued by the coaching backend
type Auth struct {
	Token  string
	UserID string
}

// GetAuth retrieves the stored authentication token
func (s *Store) GetAuth() (*Auth, error) {
	row := s.db.QueryRow(`
		SELECT token, user_id
		FROM auth
		WHERE id = 1
	`)

	var auth Auth
	err := row.Scan(&auth.Token, &auth.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAuth
	}
	if err != nil {
		return nil, err
	}

	return &auth, nil
}

// SaveAuth stores or updates the authentication token
func (s *Store) SaveAuth(auth *Auth) error {
	_, err := s.db.Exec(`
		INSERT INTO auth (id, token, user_id, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			updated_at = CURRENT_TIMESTAMP
	`, auth.Token, auth.UserID)
	return err
}

// DeleteAuth removes the stored token. Used on logout and on any 401.
func (s *Store) DeleteAuth() error {
	_, err := s.db.Exec(`DELETE FROM auth WHERE id = 1`)
	return err
}
