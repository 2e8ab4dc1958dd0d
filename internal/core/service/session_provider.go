package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
)

// SessionProvider is the only component that touches the credential store.
// Everything else receives the *domain.Session it hands out.
type SessionProvider struct {
	store ports.CredentialStore
	now   func() time.Time
	log   zerolog.Logger
}

// NewSessionProvider returns a SessionProvider backed by store.
func NewSessionProvider(store ports.CredentialStore, log zerolog.Logger) *SessionProvider {
	return &SessionProvider{store: store, now: time.Now, log: log}
}

// Init loads the session for id. Expired, tokenless or corrupt entries are
// removed and reported as domain.ErrSessionNotFound.
func (p *SessionProvider) Init(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}

	s, err := p.store.Get(ctx, id)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return nil, domain.ErrSessionNotFound
	case errors.Is(err, domain.ErrSessionCorrupt):
		p.log.Warn().Err(err).Msg("discarding corrupt session")
		p.discard(ctx, id)
		return nil, domain.ErrSessionNotFound
	case err != nil:
		return nil, fmt.Errorf("init session: %w", err)
	}

	if !s.Authenticated() || s.Expired(p.now()) {
		p.discard(ctx, id)
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Set persists s for the rest of its lifetime.
func (p *SessionProvider) Set(ctx context.Context, s *domain.Session) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("set session: %w", domain.ErrSessionNotFound)
	}
	ttl := s.TTL(p.now())
	if ttl <= 0 {
		return fmt.Errorf("set session: %w", domain.ErrSessionExpired)
	}
	if err := p.store.Set(ctx, s, ttl); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Clear removes the session. Clearing an unknown id is not an error.
func (p *SessionProvider) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := p.store.Clear(ctx, id); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (p *SessionProvider) discard(ctx context.Context, id string) {
	if err := p.store.Clear(ctx, id); err != nil {
		p.log.Warn().Err(err).Msg("failed to discard session")
	}
}
