package ports

import (
	"context"
	"time"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

// CredentialStore persists the session slot: the backend token and the cached
// profile, keyed by session id.
type CredentialStore interface {
	// Get returns domain.ErrSessionNotFound when nothing is stored under id.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Set(ctx context.Context, s *domain.Session, ttl time.Duration) error
	// Clear is idempotent.
	Clear(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
