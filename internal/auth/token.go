// Package auth holds the bearer token the coaching backend issues at
// login. The token is opaque and never refreshed; when the backend
// rejects it the whole session is cleared and the user logs in again.
package auth

import (
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNoToken is returned when no token has been set
var ErrNoToken = errors.New("not authenticated")

// TokenSource satisfies oauth2.TokenSource with the stored bearer
// token, so authenticated requests go through a standard oauth2 client.
type TokenSource struct {
	mu    sync.Mutex
	token string
}

// NewTokenSource creates a token source, optionally pre-seeded with a
// token restored from the local store.
func NewTokenSource(token string) *TokenSource {
	return &TokenSource{token: token}
}

// Token returns the current bearer token.
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.token == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: ts.token, TokenType: "Bearer"}, nil
}

// Set replaces the token after a successful login.
func (ts *TokenSource) Set(token string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.token = token
}

// Clear drops the token. Used on logout and on any 401.
func (ts *TokenSource) Clear() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.token = ""
}

// Authenticated reports whether a token is present.
func (ts *TokenSource) Authenticated() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.token != ""
}
