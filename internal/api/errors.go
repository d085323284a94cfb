package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is matched (via errors.Is) on any 401 response.
// Callers treat it as fatal to the session: clear and re-login, never
// retry.
var ErrUnauthorized = errors.New("authentication rejected")

// APIError is a non-2xx response from the coaching backend.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("API error %d", e.Status)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}
