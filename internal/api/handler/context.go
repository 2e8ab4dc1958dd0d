package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/garimobility/admin-dashboard/internal/api/middleware"
	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
)

// RepositoryFactory builds the resource repositories on top of a requester.
type RepositoryFactory func(ports.Requester) ports.Repositories

// ctxSession returns the session bound by the Session middleware. Its absence
// means the route was registered outside the protected group.
func ctxSession(c echo.Context) (*domain.Session, error) {
	s, _ := c.Get(middleware.KeySession).(*domain.Session)
	if s == nil {
		return nil, domain.ErrSessionExpired
	}
	return s, nil
}

func ctxRepos(c echo.Context, build RepositoryFactory) (ports.Repositories, error) {
	r, _ := c.Get(middleware.KeyRequester).(ports.Requester)
	if r == nil {
		return ports.Repositories{}, domain.ErrSessionExpired
	}
	return build(r), nil
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// bindValid binds the request body into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
