package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/garimobility/admin-dashboard/internal/api/cookie"
	"github.com/garimobility/admin-dashboard/internal/api/middleware"
	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Ends expired sessions: expires the cookie and sends the client to login.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, codec *cookie.Codec) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrSessionExpired) {
			codec.Clear(c)
			if wantsJSON(c) {
				_ = c.JSON(http.StatusUnauthorized, errorResponse{Error: "session expired", Redirect: middleware.LoginPath})
				return
			}
			_ = c.Redirect(http.StatusSeeOther, loginTarget(c))
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var (
		authErr *domain.AuthError
		apiErr  *domain.APIError
	)
	switch {
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, authErr.Error()
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrNetwork):
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend unreachable")
		return http.StatusBadGateway, domain.ErrNetwork.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "backend timed out"
	case errors.As(err, &apiErr):
		return backendStatus(apiErr)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// backendStatus relays client errors from the backend and hides server ones.
func backendStatus(e *domain.APIError) (int, string) {
	msg := e.Detail
	if e.Status >= 400 && e.Status < 500 {
		if msg == "" {
			msg = http.StatusText(e.Status)
		}
		return e.Status, msg
	}
	return http.StatusBadGateway, "backend error"
}

func wantsJSON(c echo.Context) bool {
	req := c.Request()
	return strings.HasPrefix(req.URL.Path, "/api/") ||
		strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) ||
		req.Header.Get(echo.HeaderXRequestedWith) == "XMLHttpRequest"
}

func loginTarget(c echo.Context) string {
	if c.Request().Method != http.MethodGet {
		return middleware.LoginPath
	}
	return middleware.LoginRedirect(c.Request().URL.Path)
}
