package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
)

// LoanService holds the loan review rules shared by the list and detail screens.
type LoanService struct {
	now func() time.Time
	log zerolog.Logger
}

func NewLoanService(log zerolog.Logger) *LoanService {
	return &LoanService{now: time.Now, log: log}
}

// Queue lists applications ordered by id; descending unless asc is set.
func (s *LoanService) Queue(ctx context.Context, repo ports.LoanRepository, asc bool) (*domain.LoanQueue, error) {
	apps, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list loan applications: %w", err)
	}

	slices.SortStableFunc(apps, func(a, b domain.LoanApplication) int {
		if asc {
			return cmp.Compare(a.ID.Int(), b.ID.Int())
		}
		return cmp.Compare(b.ID.Int(), a.ID.Int())
	})

	q := &domain.LoanQueue{Applications: apps, Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case domain.LoanPending:
			q.Pending++
		case domain.LoanUnderReview:
			q.UnderReview++
		}
	}
	return q, nil
}

// ChangeStatus moves an application to status. Approvals are stamped with the
// decision time; rejections carry the optional reason.
func (s *LoanService) ChangeStatus(ctx context.Context, repo ports.LoanRepository, id, status, reason string) (*domain.LoanApplication, error) {
	st, err := domain.ParseLoanStatus(status)
	if err != nil {
		return nil, err
	}

	app, err := repo.Patch(ctx, id, domain.NewStatusUpdate(st, reason, s.now()))
	if err != nil {
		return nil, fmt.Errorf("change status of loan %s: %w", id, err)
	}

	s.log.Info().Str("loan_id", id).Str("status", string(st)).Msg("loan application status changed")
	return app, nil
}
