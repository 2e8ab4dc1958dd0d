package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/garimobility/admin-dashboard/internal/api/cookie"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// guardedPrefixes are the path trees the route guard looks at. Anything else
// passes through untouched.
var guardedPrefixes = []string{"/dashboard", "/profile", "/settings"}

// Decision is the outcome of the route guard for one request.
type Decision struct {
	Redirect bool
	Location string
}

// Decide maps a request path and the presence of a session cookie to a
// redirect decision. It performs no I/O.
func Decide(path string, hasSession bool) Decision {
	switch {
	case path == LoginPath:
		if hasSession {
			return Decision{Redirect: true, Location: DashboardPath}
		}
		return Decision{}
	case path == "/" || path == "/register":
		return Decision{}
	case guarded(path) && !hasSession:
		return Decision{Redirect: true, Location: LoginRedirect(path)}
	}
	return Decision{}
}

// LoginRedirect builds the login URL that returns to path after sign-in.
func LoginRedirect(path string) string {
	return LoginPath + "?from=" + strings.ReplaceAll(url.QueryEscape(path), "%2F", "/")
}

func guarded(path string) bool {
	for _, p := range guardedPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// RouteGuard applies Decide to every request, reading only the cookie.
func RouteGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := Decide(c.Request().URL.Path, cookie.Present(c))
			if d.Redirect {
				return c.Redirect(http.StatusFound, d.Location)
			}
			return next(c)
		}
	}
}
