package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
)

const (
	overviewParallelism = 4
	topCategories       = 4
	recentWindow        = 24 * time.Hour
	revenueWindow       = 30 * 24 * time.Hour
)

// DashboardService aggregates several backend resources into the landing and
// analytics views. Each resource is fetched independently; a failing resource
// only zeroes its own counters.
type DashboardService struct {
	now func() time.Time
	log zerolog.Logger
}

func NewDashboardService(log zerolog.Logger) *DashboardService {
	return &DashboardService{now: time.Now, log: log}
}

type snapshot struct {
	users        []domain.User
	bikes        []domain.Bike
	loans        []domain.LoanApplication
	categories   []domain.Category
	transactions []domain.Transaction
	failed       []string
}

// collect fetches every resource with bounded parallelism and waits for all of
// them, successful or not. Only a session expiry aborts the view.
func (s *DashboardService) collect(ctx context.Context, repos ports.Repositories) (*snapshot, error) {
	var (
		snap snapshot
		mu   sync.Mutex
		errs = make(map[string]error)
		g    errgroup.Group
	)
	g.SetLimit(overviewParallelism)

	record := func(resource string, err error) {
		if err == nil {
			return
		}
		mu.Lock()
		errs[resource] = err
		mu.Unlock()
	}

	g.Go(func() error {
		v, err := repos.Users.List(ctx)
		snap.users = v
		record("users", err)
		return nil
	})
	g.Go(func() error {
		v, err := repos.Bikes.List(ctx)
		snap.bikes = v
		record("bikes", err)
		return nil
	})
	g.Go(func() error {
		v, err := repos.Loans.List(ctx)
		snap.loans = v
		record("loans", err)
		return nil
	})
	g.Go(func() error {
		v, err := repos.Categories.List(ctx)
		snap.categories = v
		record("categories", err)
		return nil
	})
	g.Go(func() error {
		v, err := repos.Wallet.Transactions(ctx)
		snap.transactions = v
		record("payments", err)
		return nil
	})
	_ = g.Wait()

	for resource, err := range errs {
		if errors.Is(err, domain.ErrSessionExpired) {
			return nil, fmt.Errorf("collect %s: %w", resource, err)
		}
		s.log.Warn().Err(err).Str("resource", resource).Msg("overview resource unavailable")
		snap.failed = append(snap.failed, resource)
	}
	slices.Sort(snap.failed)
	return &snap, nil
}

// Overview builds the landing screen.
func (s *DashboardService) Overview(ctx context.Context, repos ports.Repositories) (domain.Overview, error) {
	snap, err := s.collect(ctx, repos)
	if err != nil {
		return domain.Overview{}, err
	}

	now := s.now()
	since := now.Add(-recentWindow)
	var (
		stats      domain.OverviewStats
		activities []domain.Activity
	)

	stats.TotalUsers = len(snap.users)
	recentUsers := 0
	for _, u := range snap.users {
		if u.Active() {
			stats.ActiveUsers++
		}
		if joined := u.Joined(); recentUsers < 2 && joined.After(since) {
			recentUsers++
			name := firstNonEmpty(u.FirstName, u.Username, "New User")
			activities = append(activities, domain.Activity{
				ID:          fmt.Sprintf("user-%d", u.ID),
				Type:        "user_registration",
				Title:       "New User Registration",
				Description: name + " joined the platform",
				User:        name,
				Timestamp:   joined,
			})
		}
	}

	stats.TotalBikes = len(snap.bikes)
	recentBikes := 0
	for _, b := range snap.bikes {
		if b.Available() {
			stats.AvailableBikes++
		}
		if b.NeedsMaintenance(now) {
			stats.MaintenanceCount++
		}
		if recentBikes < 1 && b.CreatedAt != nil && b.CreatedAt.After(since) {
			recentBikes++
			activities = append(activities, domain.Activity{
				ID:          fmt.Sprintf("bike-%d", b.ID),
				Type:        "bike_added",
				Title:       "New E-Bike Added",
				Description: firstNonEmpty(b.Name, "E-Bike") + " added to inventory",
				Amount:      b.Price,
				Timestamp:   *b.CreatedAt,
			})
		}
	}

	recentLoans := 0
	for _, l := range snap.loans {
		switch l.Status {
		case domain.LoanApproved:
			stats.ActiveLoans++
		case domain.LoanPending:
			stats.PendingLoans++
		}
		if recentLoans < 2 && l.CreatedAt != nil && l.CreatedAt.After(since) {
			recentLoans++
			product := "E-Bike"
			if l.Product != nil && l.Product.Name != "" {
				product = l.Product.Name
			}
			activities = append(activities, domain.Activity{
				ID:          "loan-" + string(l.ID),
				Type:        "loan_application",
				Title:       "Loan Application",
				Description: product + " loan request",
				User:        firstNonEmpty(strings.TrimSpace(l.FirstName+" "+l.LastName), "Applicant"),
				Status:      string(l.Status),
				Timestamp:   *l.CreatedAt,
			})
		}
	}

	stats.TotalCategories = len(snap.categories)

	recentPayments := 0
	for _, t := range snap.transactions {
		stats.TotalRevenue += t.Amount
		if t.CreatedAt == nil {
			continue
		}
		if t.CreatedAt.After(now.Add(-revenueWindow)) {
			stats.MonthlyRevenue += t.Amount
		}
		if recentPayments < 1 && t.CreatedAt.After(since) {
			recentPayments++
			activities = append(activities, domain.Activity{
				ID:          "payment-" + string(t.ID),
				Type:        "payment",
				Title:       "Payment Received",
				Description: firstNonEmpty(t.Type, "Payment processed"),
				Amount:      t.Amount,
				Timestamp:   *t.CreatedAt,
			})
		}
	}

	slices.SortStableFunc(activities, func(a, b domain.Activity) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	return domain.Overview{
		Stats:      stats,
		Categories: categoryShares(snap.bikes, topCategories),
		Activities: activities,
		Degraded:   snap.failed,
	}, nil
}

// Analytics builds the analytics screen.
func (s *DashboardService) Analytics(ctx context.Context, repos ports.Repositories) (domain.Analytics, error) {
	snap, err := s.collect(ctx, repos)
	if err != nil {
		return domain.Analytics{}, err
	}

	out := domain.Analytics{
		LoansByStatus: map[domain.LoanStatus]int{
			domain.LoanPending:     0,
			domain.LoanUnderReview: 0,
			domain.LoanApproved:    0,
			domain.LoanRejected:    0,
		},
		CategoryDistribution: categoryShares(snap.bikes, 0),
	}

	var total float64
	for _, l := range snap.loans {
		out.LoansByStatus[l.Status]++
		total += l.LoanAmount
	}
	if n := len(snap.loans); n > 0 {
		out.AverageLoanAmount = round1(total / float64(n))
	}
	approved := out.LoansByStatus[domain.LoanApproved]
	if decided := approved + out.LoansByStatus[domain.LoanRejected]; decided > 0 {
		out.ApprovalRate = round1(float64(approved) / float64(decided) * 100)
	}
	return out, nil
}

// categoryShares groups bikes by category, largest first. limit <= 0 keeps all.
func categoryShares(bikes []domain.Bike, limit int) []domain.CategoryShare {
	counts := make(map[string]int)
	for _, b := range bikes {
		counts[firstNonEmpty(b.Category, "Unknown")]++
	}

	shares := make([]domain.CategoryShare, 0, len(counts))
	for name, n := range counts {
		shares = append(shares, domain.CategoryShare{
			Name:       name,
			Bikes:      n,
			Percentage: int(math.Round(float64(n) / float64(len(bikes)) * 100)),
		})
	}
	slices.SortFunc(shares, func(a, b domain.CategoryShare) int {
		if c := cmp.Compare(b.Bikes, a.Bikes); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if limit > 0 && len(shares) > limit {
		shares = shares[:limit]
	}
	return shares
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
