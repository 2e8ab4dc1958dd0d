package middleware

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/garimobility/admin-dashboard/internal/api/cookie"
	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
)

// Context keys set by Session and read by the handlers.
const (
	KeySession   = "session"
	KeyRequester = "requester"
	KeyRole      = "role"
)

// RequesterFactory binds a backend requester to a session id.
type RequesterFactory func(sessionID string) ports.Requester

// Session resolves the signed cookie into a live session and binds it, with a
// guarded backend requester, to the request. A missing, forged or stale
// cookie ends in domain.ErrSessionExpired, which the error handler turns into
// a redirect to the login screen. Store failures are returned as they are so
// an outage does not sign anybody out.
func Session(codec *cookie.Codec, sessions ports.SessionProvider, bind RequesterFactory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := codec.SessionID(c)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
			}

			s, err := sessions.Init(c.Request().Context(), id)
			if errors.Is(err, domain.ErrSessionNotFound) {
				return fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
			}
			if err != nil {
				return err
			}

			c.Set(KeySession, s)
			c.Set(KeyRequester, bind(s.ID))
			c.Set(KeyRole, s.User.EffectiveRole())

			return next(c)
		}
	}
}
