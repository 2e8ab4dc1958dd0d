package cookie

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

func newSession(remember bool) *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{ID: "sess-1", Token: "backend-token", Remember: remember, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret", false)

	value, err := codec.Sign(newSession(false))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if strings.Contains(value, "backend-token") {
		t.Fatalf("cookie must not carry the backend token")
	}

	id, err := codec.Parse(value)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "sess-1" {
		t.Fatalf("expected sess-1, got %q", id)
	}
}

func TestCodec_RejectsForeignSignature(t *testing.T) {
	value, _ := NewCodec("secret", false).Sign(newSession(false))

	if _, err := NewCodec("other", false).Parse(value); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestCodec_RejectsExpired(t *testing.T) {
	codec := NewCodec("secret", false)
	s := newSession(false)
	s.CreatedAt = time.Now().Add(-2 * time.Hour)
	s.ExpiresAt = time.Now().Add(-time.Hour)

	value, _ := codec.Sign(s)
	if _, err := codec.Parse(value); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestCodec_WriteSessionCookie(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)

	if err := NewCodec("secret", true).Write(c, newSession(false)); err != nil {
		t.Fatalf("write: %v", err)
	}

	ck := rec.Result().Cookies()[0]
	if ck.Name != Name || ck.Path != "/" || !ck.HttpOnly || !ck.Secure || ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie attributes: %+v", ck)
	}
	if ck.MaxAge != 0 || !ck.Expires.IsZero() {
		t.Fatalf("expected a browser-session cookie, got %+v", ck)
	}
}

func TestCodec_WriteRememberedCookie(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)

	if err := NewCodec("secret", false).Write(c, newSession(true)); err != nil {
		t.Fatalf("write: %v", err)
	}

	ck := rec.Result().Cookies()[0]
	if ck.MaxAge <= 0 {
		t.Fatalf("expected a persistent cookie, got max-age %d", ck.MaxAge)
	}
}

func TestCodec_Clear(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/logout", nil), rec)

	NewCodec("secret", false).Clear(c)

	ck := rec.Result().Cookies()[0]
	if ck.Name != Name || ck.Value != "" || ck.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", ck)
	}
}

func TestSessionID_FromRequest(t *testing.T) {
	codec := NewCodec("secret", false)
	value, _ := codec.Sign(newSession(false))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: value})
	c := e.NewContext(req, httptest.NewRecorder())

	if !Present(c) {
		t.Fatalf("expected cookie to be present")
	}
	id, err := codec.SessionID(c)
	if err != nil || id != "sess-1" {
		t.Fatalf("expected sess-1, got %q (%v)", id, err)
	}
}

func TestSessionID_Missing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), httptest.NewRecorder())

	if Present(c) {
		t.Fatalf("expected no cookie")
	}
	if _, err := NewCodec("secret", false).SessionID(c); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
