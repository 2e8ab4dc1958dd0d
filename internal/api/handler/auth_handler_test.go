package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/garimobility/admin-dashboard/internal/api/cookie"
	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, email, password string, remember bool) (*domain.Session, error)
	currentFn func(ctx context.Context, sessionID string) (*domain.UserProfile, error)
	logouts   []string
}

func (s *stubAuthService) Login(ctx context.Context, email, password string, remember bool) (*domain.Session, error) {
	return s.loginFn(ctx, email, password, remember)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) {
	s.logouts = append(s.logouts, sessionID)
}

func (s *stubAuthService) Current(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	if s.currentFn == nil {
		return nil, domain.ErrSessionNotFound
	}
	return s.currentFn(ctx, sessionID)
}

func newSession(remember bool) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:        "sess-1",
		Token:     "backend-token",
		User:      &domain.UserProfile{ID: 1, Email: "admin@gari.tech", Role: "admin"},
		Remember:  remember,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func newAuthEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookie.Name {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newAuthEcho()
	codec := cookie.NewCodec("secret", false)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string, remember bool) (*domain.Session, error) {
			if email != "admin@gari.tech" || password != "pw" || !remember {
				t.Fatalf("unexpected args: %s %s %v", email, password, remember)
			}
			return newSession(true), nil
		},
	}
	h := NewAuthHandler(stub, codec, zerolog.Nop())

	body := strings.NewReader(`{"email":"admin@gari.tech","password":"pw","remember":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login/", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user"]["email"] != "admin@gari.tech" {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "backend-token") {
		t.Fatalf("backend token leaked into the response")
	}

	ck := sessionCookie(t, rec)
	if ck == nil {
		t.Fatalf("expected a session cookie")
	}
	if id, err := codec.Parse(ck.Value); err != nil || id != "sess-1" {
		t.Fatalf("cookie should carry the session id, got %q (%v)", id, err)
	}
	if !ck.HttpOnly || ck.MaxAge <= 0 {
		t.Fatalf("expected persistent HttpOnly cookie, got %+v", ck)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newAuthEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string, remember bool) (*domain.Session, error) {
			return nil, &domain.AuthError{Status: http.StatusBadRequest, Message: "Unable to log in with provided credentials."}
		},
	}
	h := NewAuthHandler(stub, cookie.NewCodec("secret", false), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login/", strings.NewReader(`{"email":"a@b.c","password":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unable to log in with provided credentials.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if sessionCookie(t, rec) != nil {
		t.Fatalf("no cookie expected on failure")
	}
}

func TestAuthHandler_Login_NetworkError(t *testing.T) {
	e := newAuthEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string, remember bool) (*domain.Session, error) {
			return nil, &domain.NetworkError{Op: "login", Err: context.DeadlineExceeded}
		},
	}
	h := NewAuthHandler(stub, cookie.NewCodec("secret", false), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login/", strings.NewReader(`{"email":"a@b.c","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Network error - unable to connect to the server") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newAuthEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string, remember bool) (*domain.Session, error) {
			t.Fatalf("login must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, cookie.NewCodec("secret", false), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login/", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_LoginMethodNotAllowed(t *testing.T) {
	e := newAuthEcho()
	h := NewAuthHandler(&stubAuthService{}, cookie.NewCodec("secret", false), zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/auth/login/", nil), rec)

	if err := h.LoginMethodNotAllowed(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	var resp errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error != "Method not allowed. Please use POST for login." {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}

func TestAuthHandler_LoginForm_RedirectsToFrom(t *testing.T) {
	cases := map[string]string{
		"/dashboard/users":  "/dashboard/users",
		"":                  "/dashboard",
		"https://evil.test": "/dashboard",
		"//evil.test":       "/dashboard",
		"/login":            "/dashboard",
	}
	for from, want := range cases {
		t.Run(from, func(t *testing.T) {
			e := newAuthEcho()
			stub := &stubAuthService{
				loginFn: func(ctx context.Context, email, password string, remember bool) (*domain.Session, error) {
					return newSession(remember), nil
				},
			}
			h := NewAuthHandler(stub, cookie.NewCodec("secret", false), zerolog.Nop())

			form := url.Values{"email": {"admin@gari.tech"}, "password": {"pw"}, "from": {from}}
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
			rec := httptest.NewRecorder()

			if err := h.LoginForm(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", rec.Code)
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != want {
				t.Fatalf("expected redirect to %q, got %q", want, loc)
			}
			ck := sessionCookie(t, rec)
			if ck == nil || ck.MaxAge != 0 {
				t.Fatalf("expected a browser-session cookie, got %+v", ck)
			}
		})
	}
}

func TestAuthHandler_LoginForm_RerendersOnFailure(t *testing.T) {
	e := newAuthEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string, remember bool) (*domain.Session, error) {
			return nil, &domain.AuthError{Status: http.StatusBadRequest, Message: "Invalid credentials"}
		},
	}
	h := NewAuthHandler(stub, cookie.NewCodec("secret", false), zerolog.Nop())

	form := url.Values{"email": {"admin@gari.tech"}, "password": {"bad"}, "from": {"/dashboard/e-bikes"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	if err := h.LoginForm(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Invalid credentials", `value="admin@gari.tech"`, `value="/dashboard/e-bikes"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page:\n%s", want, body)
		}
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newAuthEcho()
	codec := cookie.NewCodec("secret", false)
	stub := &stubAuthService{}
	h := NewAuthHandler(stub, codec, zerolog.Nop())

	value, err := codec.Sign(newSession(false))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: value})
	rec := httptest.NewRecorder()

	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.logouts) != 1 || stub.logouts[0] != "sess-1" {
		t.Fatalf("expected logout of sess-1, got %v", stub.logouts)
	}
	ck := sessionCookie(t, rec)
	if ck == nil || ck.MaxAge >= 0 || ck.Value != "" {
		t.Fatalf("expected an expired cookie, got %+v", ck)
	}
}

func TestAuthHandler_LogoutForm_WithoutCookie(t *testing.T) {
	e := newAuthEcho()
	stub := &stubAuthService{}
	h := NewAuthHandler(stub, cookie.NewCodec("secret", false), zerolog.Nop())

	rec := httptest.NewRecorder()
	if err := h.LogoutForm(e.NewContext(httptest.NewRequest(http.MethodPost, "/logout", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if len(stub.logouts) != 0 {
		t.Fatalf("nothing to log out, got %v", stub.logouts)
	}
}
