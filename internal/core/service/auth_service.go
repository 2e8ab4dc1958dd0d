package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
)

const (
	defaultSessionTTL  = 24 * time.Hour
	defaultRememberTTL = 30 * 24 * time.Hour
)

// AuthService implements login, logout and profile lookup.
type AuthService struct {
	authn       ports.Authenticator
	sessions    ports.SessionProvider
	ttl         time.Duration
	rememberTTL time.Duration
	now         func() time.Time
	newID       func() string
	log         zerolog.Logger
}

func NewAuthService(authn ports.Authenticator, sessions ports.SessionProvider, ttl, rememberTTL time.Duration, log zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if rememberTTL <= 0 {
		rememberTTL = defaultRememberTTL
	}
	return &AuthService{
		authn:       authn,
		sessions:    sessions,
		ttl:         ttl,
		rememberTTL: rememberTTL,
		now:         time.Now,
		newID:       uuid.NewString,
		log:         log,
	}
}

// Login exchanges credentials for a backend token and persists the resulting
// session before returning it. Nothing is persisted when the backend refuses.
func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &domain.AuthError{Status: http.StatusBadRequest, Message: "email and password are required"}
	}

	res, err := s.authn.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if res == nil || res.Token == "" {
		return nil, &domain.AuthError{Status: http.StatusBadGateway, Message: "No token received from server"}
	}

	now := s.now().UTC()
	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}
	session := &domain.Session{
		ID:        s.newID(),
		Token:     res.Token,
		User:      res.User,
		Remember:  remember,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("session_id", session.ID).Str("email", email).Bool("remember", remember).Msg("staff logged in")
	return session, nil
}

// Logout clears every piece of persisted session state. It cannot fail; store
// errors are logged.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("logout: failed to clear session")
		return
	}
	s.log.Info().Str("session_id", sessionID).Msg("staff logged out")
}

// Current returns the cached profile of an active session.
func (s *AuthService) Current(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	session, err := s.sessions.Init(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.User, nil
}
