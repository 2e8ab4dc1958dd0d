// Package cookie signs and reads the session cookie. The cookie carries the
// session id only; the backend token never leaves the server.
package cookie

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

// Name is the cookie the route middleware checks for.
const Name = "token"

const issuer = "gari-admin-dashboard"

var ErrInvalid = errors.New("invalid session cookie")

// Codec issues and verifies HS256-signed session cookies.
type Codec struct {
	secret []byte
	secure bool
}

// NewCodec returns a Codec. An empty secret is replaced by a random one, which
// invalidates every cookie on restart.
func NewCodec(secret string, secure bool) *Codec {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	return &Codec{secret: key, secure: secure}
}

// Sign encodes the session id and expiry.
func (c *Codec) Sign(s *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        s.ID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// Parse verifies value and returns the session id it carries.
func (c *Codec) Parse(value string) (string, error) {
	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(value, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil || !tkn.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if claims.ID == "" {
		return "", fmt.Errorf("%w: missing session id", ErrInvalid)
	}
	return claims.ID, nil
}

// Write sets the cookie for s. Remembered sessions get a persistent cookie;
// others last for the browser session.
func (c *Codec) Write(ctx echo.Context, s *domain.Session) error {
	value, err := c.Sign(s)
	if err != nil {
		return err
	}
	ck := c.base(value)
	if s.Remember {
		ck.Expires = s.ExpiresAt
		ck.MaxAge = int(time.Until(s.ExpiresAt).Seconds())
	}
	ctx.SetCookie(ck)
	return nil
}

// Clear expires the cookie.
func (c *Codec) Clear(ctx echo.Context) {
	ck := c.base("")
	ck.MaxAge = -1
	ck.Expires = time.Unix(0, 0)
	ctx.SetCookie(ck)
}

// Present reports whether the request carries a non-empty session cookie.
// The signature is not checked.
func Present(ctx echo.Context) bool {
	ck, err := ctx.Cookie(Name)
	return err == nil && ck.Value != ""
}

// SessionID reads and verifies the session cookie of the request.
func (c *Codec) SessionID(ctx echo.Context) (string, error) {
	ck, err := ctx.Cookie(Name)
	if err != nil || ck.Value == "" {
		return "", fmt.Errorf("%w: missing", ErrInvalid)
	}
	return c.Parse(ck.Value)
}

func (c *Codec) base(value string) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
