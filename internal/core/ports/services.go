package ports

import (
	"context"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

// DashboardService builds the landing and analytics views.
type DashboardService interface {
	Overview(ctx context.Context, repos Repositories) (domain.Overview, error)
	Analytics(ctx context.Context, repos Repositories) (domain.Analytics, error)
}

// Fallbacks is the demo data screens may substitute when the backend fails.
type Fallbacks struct {
	Categories   []domain.Category
	Transactions []domain.Transaction
	Wallet       *domain.Wallet
	Methods      []domain.MethodShare
}

// LoanService holds the review rules of the loan applications screens.
type LoanService interface {
	Queue(ctx context.Context, repo LoanRepository, asc bool) (*domain.LoanQueue, error)
	ChangeStatus(ctx context.Context, repo LoanRepository, id, status, reason string) (*domain.LoanApplication, error)
}
