package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/garimobility/admin-dashboard/internal/api/cookie"
	"github.com/garimobility/admin-dashboard/internal/api/middleware"
	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
	"github.com/garimobility/admin-dashboard/internal/pkg/metrics"
)

type AuthHandler struct {
	authService ports.AuthService
	codec       *cookie.Codec
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, codec *cookie.Codec, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, codec: codec, log: log}
}

// LoginPage renders the sign-in form.
//
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Param        from  query  string  false  "Path to return to after sign-in"
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return h.renderLogin(c, http.StatusOK, loginView{From: safeFrom(c.QueryParam("from"))})
}

// LoginForm signs in from the HTML form and redirects to the requested page.
//
// @Summary      Login (form)
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email     formData  string  true   "Email"
// @Param        password  formData  string  true   "Password"
// @Param        remember  formData  bool    false  "Keep the session for 30 days"
// @Param        from      formData  string  false  "Path to return to"
// @Success      303
// @Failure      401
// @Failure      422
// @Failure      502
// @Router       /login [post]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return h.renderLogin(c, http.StatusBadRequest, loginView{Error: "invalid payload"})
	}
	view := loginView{Email: req.Email, From: safeFrom(req.From)}
	if err := c.Validate(&req); err != nil {
		view.Error = err.Error()
		return h.renderLogin(c, http.StatusUnprocessableEntity, view)
	}

	if err := h.login(c, req); err != nil {
		status, msg := h.loginFailure(err)
		view.Error = msg
		return h.renderLogin(c, status, view)
	}

	target := view.From
	if target == "" {
		target = middleware.DashboardPath
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// Login authenticates against the backend and starts a dashboard session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/v1/auth/login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.login(c, req); err != nil {
		status, msg := h.loginFailure(err)
		return c.JSON(status, errorResponse{Error: msg})
	}

	s, _ := c.Get(middleware.KeySession).(*domain.Session)
	return c.JSON(http.StatusOK, loginResponse{User: s.User})
}

// LoginMethodNotAllowed answers GET on the login endpoint.
//
// @Summary      Login (wrong method)
// @Tags         auth
// @Produce      json
// @Failure      405  {object}  errorResponse
// @Router       /api/v1/auth/login/ [get]
func (h *AuthHandler) LoginMethodNotAllowed(c echo.Context) error {
	return c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed. Please use POST for login."})
}

// Logout ends the session. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/auth/logout/ [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.logout(c)
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// LogoutForm ends the session and returns to the login screen.
//
// @Summary      Logout (form)
// @Tags         auth
// @Success      303
// @Router       /logout [post]
func (h *AuthHandler) LogoutForm(c echo.Context) error {
	h.logout(c)
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (h *AuthHandler) login(c echo.Context, req loginRequest) error {
	s, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		return err
	}
	if err := h.codec.Write(c, s); err != nil {
		h.authService.Logout(c.Request().Context(), s.ID)
		return err
	}
	c.Set(middleware.KeySession, s)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return nil
}

func (h *AuthHandler) logout(c echo.Context) {
	if id, err := h.codec.SessionID(c); err == nil {
		h.authService.Logout(c.Request().Context(), id)
	}
	h.codec.Clear(c)
}

// loginFailure maps a login error to the status and message shown to the user.
func (h *AuthHandler) loginFailure(err error) (int, string) {
	var authErr *domain.AuthError
	switch {
	case errors.As(err, &authErr):
		metrics.LoginsTotal.WithLabelValues("auth_error").Inc()
		if authErr.Status >= http.StatusInternalServerError {
			return http.StatusBadGateway, authErr.Error()
		}
		return http.StatusUnauthorized, authErr.Error()
	case errors.Is(err, domain.ErrNetwork):
		metrics.LoginsTotal.WithLabelValues("network_error").Inc()
		h.log.Warn().Err(err).Msg("login: backend unreachable")
		return http.StatusBadGateway, "Network error - unable to connect to the server"
	default:
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		h.log.Error().Err(err).Msg("login failed")
		return http.StatusInternalServerError, "Failed to login"
	}
}

func (h *AuthHandler) renderLogin(c echo.Context, status int, view loginView) error {
	var buf bytes.Buffer
	if err := loginPage.Execute(&buf, view); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

// safeFrom keeps only local paths so the login redirect cannot leave the site.
func safeFrom(from string) string {
	if !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.HasPrefix(from, "/\\") {
		return ""
	}
	if from == middleware.LoginPath || strings.HasPrefix(from, middleware.LoginPath+"?") {
		return ""
	}
	return from
}
