package handler

import (
	"cmp"
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

// UserHandler serves the users management screen.
type UserHandler struct {
	repos RepositoryFactory
}

func NewUserHandler(repos RepositoryFactory) *UserHandler {
	return &UserHandler{repos: repos}
}

// List handles GET /dashboard/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        q       query     string  false  "Search in name, email and username"
// @Param        role    query     string  false  "Filter by role"
// @Param        status  query     string  false  "active or inactive"
// @Param        sort    query     string  false  "asc (default) or desc by join date"
// @Success      200     {object}  usersResponse
// @Failure      401     {object}  errorResponse
// @Router       /dashboard/users [get]
func (h *UserHandler) List(c echo.Context) error {
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	users, err := repos.Users.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := usersResponse{Total: len(users)}
	for _, u := range users {
		if u.Active() {
			resp.Active++
		}
	}
	resp.Inactive = resp.Total - resp.Active
	resp.Users = filterUsers(users, c.QueryParam("q"), c.QueryParam("role"), c.QueryParam("status"))
	sortUsers(resp.Users, c.QueryParam("sort") == "desc")

	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT /dashboard/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User id"
// @Param        body  body      userUpdateRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /dashboard/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req userUpdateRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	patch := req.patch()
	if len(patch) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "nothing to update"})
	}

	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}
	u, err := repos.Users.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Toggle handles POST /dashboard/users/:id/toggle. The body carries the status
// the client currently shows; the opposite is written.
//
// @Summary      Activate or deactivate a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User id"
// @Param        body  body      toggleUserRequest  true  "Current status"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /dashboard/users/{id}/toggle [post]
func (h *UserHandler) Toggle(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req toggleUserRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}
	u, err := repos.Users.Update(c.Request().Context(), id, map[string]any{"is_active": !*req.IsActive})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /dashboard/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  int  true  "User id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /dashboard/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}
	if err := repos.Users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func filterUsers(users []domain.User, q, role, status string) []domain.User {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if q != "" && !strings.Contains(strings.ToLower(strings.Join([]string{u.FirstName, u.LastName, u.Email, u.Username}, " ")), q) {
			continue
		}
		if role != "" && role != "all" && !strings.EqualFold(u.Role, role) {
			continue
		}
		if (status == "active" && !u.Active()) || (status == "inactive" && u.Active()) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func sortUsers(users []domain.User, desc bool) {
	slices.SortStableFunc(users, func(a, b domain.User) int {
		c := a.Joined().Compare(b.Joined())
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if desc {
			return -c
		}
		return c
	})
}
