package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork         = errors.New("network error - unable to connect to the server")
	ErrAuth            = errors.New("authentication failed")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionCorrupt  = errors.New("session data is corrupt")
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidStatus   = errors.New("invalid loan application status")
	ErrForbidden       = errors.New("access forbidden")
)

// NetworkError is returned when the transport call itself fails.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrNetwork, e.Err)
}

func (e *NetworkError) Unwrap() []error { return []error{ErrNetwork, e.Err} }

// AuthError is returned when the backend refuses the credentials or answers
// the login call with something that is not a usable session.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return ErrAuth.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error { return ErrAuth }

// APIError is a non-2xx, non-401 answer on an authenticated call.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend responded %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend responded %d", e.Status)
}

// Unwrap maps a 404 onto ErrNotFound so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	if e.Status == 404 {
		return ErrNotFound
	}
	return nil
}
