package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
	"github.com/garimobility/admin-dashboard/internal/core/service"
)

// DashboardHandler serves the landing, analytics and profile screens.
type DashboardHandler struct {
	dashboard ports.DashboardService
	auth      ports.AuthService
	repos     RepositoryFactory
}

func NewDashboardHandler(dashboard ports.DashboardService, auth ports.AuthService, repos RepositoryFactory) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, auth: auth, repos: repos}
}

// Overview handles GET /dashboard.
//
// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.Overview
// @Failure      401  {object}  errorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	ov, err := h.dashboard.Overview(c.Request().Context(), repos)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ov)
}

// Analytics handles GET /dashboard/analytics.
//
// @Summary      Loan and fleet analytics
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.Analytics
// @Failure      401  {object}  errorResponse
// @Router       /dashboard/analytics [get]
func (h *DashboardHandler) Analytics(c echo.Context) error {
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	a, err := h.dashboard.Analytics(c.Request().Context(), repos)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Profile handles GET /dashboard/profile. The live profile is preferred; the
// copy stored with the session at login is served when the backend cannot
// answer.
//
// @Summary      Current staff profile
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  errorResponse
// @Router       /dashboard/profile [get]
func (h *DashboardHandler) Profile(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	res := service.Fetch(ctx, "profile", repos.Users.Me, nil)
	if res.Err != nil && !errors.Is(res.Err, domain.ErrSessionExpired) {
		if stored, err := h.auth.Current(ctx, s.ID); err == nil {
			res = domain.Substituted(stored, res.Err)
		}
	}
	if !res.Usable() {
		return res.Err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"profile":  res.Data,
		"cached":   res.Fallback,
		"remember": s.Remember,
		"expires":  s.ExpiresAt,
	})
}

// Me proxies the backend profile endpoint for the signed-in user.
//
// @Summary      Current user (proxy)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.UserProfile
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/users/me/ [get]
func (h *DashboardHandler) Me(c echo.Context) error {
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	me, err := repos.Users.Me(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, me)
}
