package ports

import (
	"context"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

// LoginResult is the normalised answer of the backend login endpoint.
type LoginResult struct {
	Token string
	User  *domain.UserProfile
}

// Authenticator talks to the backend login endpoint.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// AuthService drives the anonymous/authenticated lifecycle.
type AuthService interface {
	Login(ctx context.Context, email, password string, remember bool) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string)
	Current(ctx context.Context, sessionID string) (*domain.UserProfile, error)
}

// SessionProvider owns the lifecycle hooks of a session.
type SessionProvider interface {
	Init(ctx context.Context, sessionID string) (*domain.Session, error)
	Set(ctx context.Context, s *domain.Session) error
	Clear(ctx context.Context, sessionID string) error
}
