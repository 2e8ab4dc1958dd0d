package service

import (
	"time"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
)

// DemoFallbacks is the sample data shown when the backend is unreachable and
// demo fallback is enabled.
func DemoFallbacks() ports.Fallbacks {
	ts := func(s string) *time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return &t
	}

	return ports.Fallbacks{
		Categories: []domain.Category{
			{ID: 1, Name: "City Commuter", Description: "Perfect for urban commuting and daily rides", IsActive: true, TotalBikes: 15, ActiveRentals: 8, BasePrice: 5.5, MaintenanceCount: 2, CreatedAt: ts("2024-01-15T10:30:00Z"), UpdatedAt: ts("2024-01-20T14:45:00Z")},
			{ID: 2, Name: "Mountain E-Bike", Description: "Built for off-road adventures and trail riding", IsActive: true, TotalBikes: 12, ActiveRentals: 6, BasePrice: 7.25, MaintenanceCount: 1, CreatedAt: ts("2024-01-10T09:15:00Z"), UpdatedAt: ts("2024-01-18T16:20:00Z")},
			{ID: 3, Name: "Cargo E-Bike", Description: "Heavy-duty bikes for transporting goods and equipment", IsActive: true, TotalBikes: 8, ActiveRentals: 3, BasePrice: 8.0, CreatedAt: ts("2024-01-05T11:45:00Z"), UpdatedAt: ts("2024-01-15T13:30:00Z")},
			{ID: 4, Name: "Folding E-Bike", Description: "Compact and portable for easy storage and transport", IsActive: false, TotalBikes: 6, BasePrice: 6.75, MaintenanceCount: 1, CreatedAt: ts("2024-01-12T08:20:00Z"), UpdatedAt: ts("2024-01-19T10:15:00Z")},
		},
		Transactions: []domain.Transaction{
			{ID: "TX001", Type: "Rental Payment", Amount: 45.99, Currency: "USD", Status: "Completed", Customer: "John Smith", PaymentMethod: "Credit Card", CreatedAt: ts("2024-01-15T09:00:00Z")},
			{ID: "TX002", Type: "Loan Payment", Amount: -299.99, Currency: "USD", Status: "Processing", Customer: "Sarah Johnson", PaymentMethod: "Bank Transfer", CreatedAt: ts("2024-01-14T09:00:00Z")},
			{ID: "TX003", Type: "Deposit", Amount: 500.00, Currency: "USD", Status: "Completed", Customer: "Michael Brown", PaymentMethod: "Debit Card", CreatedAt: ts("2024-01-13T09:00:00Z")},
			{ID: "TX004", Type: "Maintenance Fee", Amount: -75.00, Currency: "USD", Status: "Completed", Customer: "Emily Davis", PaymentMethod: "Wallet Balance", CreatedAt: ts("2024-01-12T09:00:00Z")},
		},
		Wallet: &domain.Wallet{AvailableBalance: "0.00", LockedBalance: "0.00"},
		Methods: []domain.MethodShare{
			{Method: "Credit Card", Percentage: 45},
			{Method: "Bank Transfer", Percentage: 30},
			{Method: "Wallet Balance", Percentage: 15},
			{Method: "Debit Card", Percentage: 10},
		},
	}
}
