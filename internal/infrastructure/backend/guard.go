package backend

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
	"github.com/garimobility/admin-dashboard/internal/pkg/metrics"
)

// SessionClient performs backend calls for one session. The token is resolved
// through the session provider on every call, so a cleared session sends no
// Authorization header. A 401 clears the session once and turns every call,
// including concurrent ones, into domain.ErrSessionExpired.
type SessionClient struct {
	client    *Client
	sessions  ports.SessionProvider
	sessionID string
	expired   atomic.Bool
	log       zerolog.Logger
}

// ForSession binds a SessionClient to sessionID.
func (c *Client) ForSession(sessionID string, sessions ports.SessionProvider) *SessionClient {
	return &SessionClient{
		client:    c,
		sessions:  sessions,
		sessionID: sessionID,
		log:       c.log.With().Str("session_id", sessionID).Logger(),
	}
}

// Do implements ports.Requester.
func (g *SessionClient) Do(ctx context.Context, method, path string, body, out any) error {
	if g.expired.Load() {
		return domain.ErrSessionExpired
	}

	err := g.client.Call(ctx, g.token(ctx), method, path, body, out)

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		g.expire(ctx)
		return domain.ErrSessionExpired
	}
	return err
}

// Expired reports whether a 401 has been seen.
func (g *SessionClient) Expired() bool {
	return g.expired.Load()
}

func (g *SessionClient) token(ctx context.Context) string {
	if g.sessionID == "" {
		return ""
	}
	s, err := g.sessions.Init(ctx, g.sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			g.log.Warn().Err(err).Msg("could not resolve session token")
		}
		return ""
	}
	return s.Token
}

func (g *SessionClient) expire(ctx context.Context) {
	if !g.expired.CompareAndSwap(false, true) {
		return
	}
	metrics.SessionsExpiredTotal.Inc()
	if g.sessionID == "" {
		return
	}
	if err := g.sessions.Clear(context.WithoutCancel(ctx), g.sessionID); err != nil {
		g.log.Error().Err(err).Msg("failed to clear expired session")
		return
	}
	g.log.Info().Msg("backend rejected token, session cleared")
}
