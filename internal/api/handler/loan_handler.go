package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/garimobility/admin-dashboard/internal/core/ports"
)

// LoanHandler serves the loan application review screens.
type LoanHandler struct {
	loans ports.LoanService
	repos RepositoryFactory
}

func NewLoanHandler(loans ports.LoanService, repos RepositoryFactory) *LoanHandler {
	return &LoanHandler{loans: loans, repos: repos}
}

// List handles GET /dashboard/loan-applications.
//
// @Summary      List loan applications
// @Tags         loans
// @Produce      json
// @Param        sort  query     string  false  "desc (default) or asc by id"
// @Success      200   {object}  domain.LoanQueue
// @Failure      401   {object}  errorResponse
// @Router       /dashboard/loan-applications [get]
func (h *LoanHandler) List(c echo.Context) error {
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	q, err := h.loans.Queue(c.Request().Context(), repos.Loans, c.QueryParam("sort") == "asc")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, q)
}

// Applicants handles GET /dashboard/loans, the applicant-side listing that
// shows each application with its bike and status.
//
// @Summary      List loans from the applicant endpoint
// @Tags         loans
// @Produce      json
// @Success      200  {object}  loansResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard/loans [get]
func (h *LoanHandler) Applicants(c echo.Context) error {
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	apps, err := repos.Loans.Applications(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loansResponse{Applications: apps, Total: len(apps)})
}

// Get handles GET /dashboard/loan-applications/:id.
//
// @Summary      Get a loan application
// @Tags         loans
// @Produce      json
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  domain.LoanApplication
// @Failure      404  {object}  errorResponse
// @Router       /dashboard/loan-applications/{id} [get]
func (h *LoanHandler) Get(c echo.Context) error {
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	app, err := repos.Loans.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Patch handles PATCH /dashboard/loan-applications/:id. The body is forwarded
// to the backend unchanged.
//
// @Summary      Edit a loan application
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Application id"
// @Param        body  body      map[string]any  true  "Fields to change"
// @Success      200   {object}  domain.LoanApplication
// @Failure      404   {object}  errorResponse
// @Router       /dashboard/loan-applications/{id} [patch]
func (h *LoanHandler) Patch(c echo.Context) error {
	var patch map[string]any
	if err := c.Bind(&patch); err != nil || len(patch) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	app, err := repos.Loans.Patch(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// ChangeStatus handles POST /dashboard/loan-applications/:id/status.
//
// @Summary      Approve, reject or requeue an application
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Application id"
// @Param        body  body      loanStatusRequest  true  "New status"
// @Success      200   {object}  domain.LoanApplication
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /dashboard/loan-applications/{id}/status [post]
func (h *LoanHandler) ChangeStatus(c echo.Context) error {
	var req loanStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}

	app, err := h.loans.ChangeStatus(c.Request().Context(), repos.Loans, c.Param("id"), req.Status, req.RejectionReason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Delete handles DELETE /dashboard/loan-applications/:id.
//
// @Summary      Delete a loan application
// @Tags         loans
// @Param        id  path  string  true  "Application id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /dashboard/loan-applications/{id} [delete]
func (h *LoanHandler) Delete(c echo.Context) error {
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}
	if err := repos.Loans.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
