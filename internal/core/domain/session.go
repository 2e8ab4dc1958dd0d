package domain

import "time"

// Session is the server-held proof of authentication: the backend token plus the
// cached profile. A non-empty Token implies a previously successful login.
type Session struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	User      *UserProfile `json:"user,omitempty"`
	Remember  bool         `json:"remember"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Authenticated reports whether the session carries a backend token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Expired reports whether the session outlived its TTL at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || (!s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt))
}

// TTL is the remaining lifetime, never negative.
func (s *Session) TTL(now time.Time) time.Duration {
	if s == nil || s.ExpiresAt.IsZero() {
		return 0
	}
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
