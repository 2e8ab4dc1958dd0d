package domain

import "time"

// OverviewStats are the headline counters of the dashboard landing screen.
type OverviewStats struct {
	TotalUsers       int     `json:"total_users"`
	ActiveUsers      int     `json:"active_users"`
	TotalBikes       int     `json:"total_bikes"`
	AvailableBikes   int     `json:"available_bikes"`
	MaintenanceCount int     `json:"maintenance_count"`
	ActiveLoans      int     `json:"active_loans"`
	PendingLoans     int     `json:"pending_loans"`
	TotalCategories  int     `json:"total_categories"`
	TotalRevenue     float64 `json:"total_revenue"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
}

// CategoryShare is the slice of the fleet belonging to one category.
type CategoryShare struct {
	Name       string `json:"name"`
	Bikes      int    `json:"bikes"`
	Percentage int    `json:"percentage"`
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	User        string    `json:"user,omitempty"`
	Amount      float64   `json:"amount,omitempty"`
	Status      string    `json:"status,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Overview is the full landing screen view.
type Overview struct {
	Stats      OverviewStats   `json:"stats"`
	Categories []CategoryShare `json:"categories"`
	Activities []Activity      `json:"activities"`
	Degraded   []string        `json:"degraded,omitempty"`
}

// Analytics is the analytics screen view.
type Analytics struct {
	LoansByStatus        map[LoanStatus]int `json:"loans_by_status"`
	ApprovalRate         float64            `json:"approval_rate"`
	CategoryDistribution []CategoryShare    `json:"category_distribution"`
	AverageLoanAmount    float64            `json:"average_loan_amount"`
}
