package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
	"github.com/garimobility/admin-dashboard/internal/core/service"
)

// FleetHandler serves the e-bike inventory and category screens.
type FleetHandler struct {
	repos     RepositoryFactory
	fallbacks *ports.Fallbacks
	now       func() time.Time
}

// NewFleetHandler returns a FleetHandler. fallbacks may be nil, in which case
// backend failures are reported instead of substituted.
func NewFleetHandler(repos RepositoryFactory, fallbacks *ports.Fallbacks) *FleetHandler {
	return &FleetHandler{repos: repos, fallbacks: fallbacks, now: time.Now}
}

// ListBikes handles GET /dashboard/e-bikes.
//
// @Summary      List e-bikes
// @Tags         e-bikes
// @Produce      json
// @Success      200  {object}  bikesResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard/e-bikes [get]
func (h *FleetHandler) ListBikes(c echo.Context) error {
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	bikes, err := repos.Bikes.List(c.Request().Context())
	if err != nil {
		return err
	}

	now := h.now()
	resp := bikesResponse{Bikes: bikes, Total: len(bikes)}
	for _, b := range bikes {
		if b.Available() {
			resp.Available++
		}
		if b.NeedsMaintenance(now) {
			resp.Maintenance++
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateBike handles POST /dashboard/e-bikes.
//
// @Summary      Add an e-bike
// @Tags         e-bikes
// @Accept       json
// @Produce      json
// @Param        body  body      bikeRequest  true  "E-bike"
// @Success      201   {object}  domain.Bike
// @Failure      422   {object}  errorResponse
// @Router       /dashboard/e-bikes [post]
func (h *FleetHandler) CreateBike(c echo.Context) error {
	var req bikeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	b, err := repos.Bikes.Create(c.Request().Context(), req.bike())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, b)
}

// UpdateBike handles PUT /dashboard/e-bikes/:id.
//
// @Summary      Update an e-bike
// @Tags         e-bikes
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "E-bike id"
// @Param        body  body      bikeRequest  true  "E-bike"
// @Success      200   {object}  domain.Bike
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /dashboard/e-bikes/{id} [put]
func (h *FleetHandler) UpdateBike(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req bikeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	b, err := repos.Bikes.Update(c.Request().Context(), id, req.bike())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// DeleteBike handles DELETE /dashboard/e-bikes/:id.
//
// @Summary      Remove an e-bike
// @Tags         e-bikes
// @Param        id  path  int  true  "E-bike id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /dashboard/e-bikes/{id} [delete]
func (h *FleetHandler) DeleteBike(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}
	if err := repos.Bikes.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCategories handles GET /dashboard/categories. Demo categories are
// substituted when the backend fails and fallbacks are enabled.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  domain.Result[[]domain.Category]
// @Failure      401  {object}  errorResponse
// @Router       /dashboard/categories [get]
func (h *FleetHandler) ListCategories(c echo.Context) error {
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	var fallback *[]domain.Category
	if h.fallbacks != nil {
		fallback = &h.fallbacks.Categories
	}
	res := service.Fetch(c.Request().Context(), "categories", repos.Categories.List, fallback)
	if !res.Usable() {
		return res.Err
	}
	return c.JSON(http.StatusOK, res)
}

// CreateCategory handles POST /dashboard/categories.
//
// @Summary      Add a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      422   {object}  errorResponse
// @Router       /dashboard/categories [post]
func (h *FleetHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	cat, err := repos.Categories.Create(c.Request().Context(), req.category())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

// UpdateCategory handles PUT /dashboard/categories/:id.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Category id"
// @Param        body  body      categoryRequest  true  "Category"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  errorResponse
// @Router       /dashboard/categories/{id} [put]
func (h *FleetHandler) UpdateCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	cat, err := repos.Categories.Update(c.Request().Context(), id, req.category())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// DeleteCategory handles DELETE /dashboard/categories/:id.
//
// @Summary      Remove a category
// @Tags         categories
// @Param        id  path  int  true  "Category id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /dashboard/categories/{id} [delete]
func (h *FleetHandler) DeleteCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}
	if err := repos.Categories.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
