package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
)

// LoanRepository implements ports.LoanRepository. Reads and edits go through
// the admin endpoints; deletion and the plain listing only exist on the
// applicant endpoint.
type LoanRepository struct {
	r ports.Requester
}

func (l *LoanRepository) List(ctx context.Context) ([]domain.LoanApplication, error) {
	var raw json.RawMessage
	if err := l.r.Do(ctx, http.MethodGet, "/api/v1/admin/loan-applications/list_all_applications/", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.LoanApplication](raw, "applications")
}

func (l *LoanRepository) Applications(ctx context.Context) ([]domain.LoanApplication, error) {
	var raw json.RawMessage
	if err := l.r.Do(ctx, http.MethodGet, applicantLoanPath, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[domain.LoanApplication](raw, "applications")
}

func (l *LoanRepository) Get(ctx context.Context, id string) (*domain.LoanApplication, error) {
	var out domain.LoanApplication
	if err := l.r.Do(ctx, http.MethodGet, adminLoanPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *LoanRepository) Patch(ctx context.Context, id string, patch any) (*domain.LoanApplication, error) {
	var out domain.LoanApplication
	if err := l.r.Do(ctx, http.MethodPatch, adminLoanPath(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *LoanRepository) Delete(ctx context.Context, id string) error {
	return l.r.Do(ctx, http.MethodDelete, applicantLoanPath+url.PathEscape(id)+"/", nil, nil)
}

const applicantLoanPath = "/api/v1/loan-application/"

func adminLoanPath(id string) string {
	return "/api/v1/admin/loan-applications/" + url.PathEscape(id) + "/"
}
