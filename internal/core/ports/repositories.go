package ports

import (
	"context"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

// UserRepository manages customer and staff accounts.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, patch map[string]any) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	Me(ctx context.Context) (*domain.UserProfile, error)
}

// BikeRepository manages the bike inventory.
type BikeRepository interface {
	List(ctx context.Context) ([]domain.Bike, error)
	Create(ctx context.Context, b *domain.Bike) (*domain.Bike, error)
	Update(ctx context.Context, id int64, b *domain.Bike) (*domain.Bike, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository manages bike categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id int64, c *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

// LoanRepository manages loan applications.
type LoanRepository interface {
	List(ctx context.Context) ([]domain.LoanApplication, error)
	// Applications lists through the applicant endpoint, as seen by the signed-in account.
	Applications(ctx context.Context) ([]domain.LoanApplication, error)
	Get(ctx context.Context, id string) (*domain.LoanApplication, error)
	Patch(ctx context.Context, id string, patch any) (*domain.LoanApplication, error)
	Delete(ctx context.Context, id string) error
}

// WalletRepository reads payments data.
type WalletRepository interface {
	Transactions(ctx context.Context) ([]domain.Transaction, error)
	Wallet(ctx context.Context) (*domain.Wallet, error)
}

// Repositories bundles the resource repositories bound to one session.
type Repositories struct {
	Users      UserRepository
	Bikes      BikeRepository
	Categories CategoryRepository
	Loans      LoanRepository
	Wallet     WalletRepository
}
