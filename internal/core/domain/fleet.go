package domain

import (
	"encoding/json"
	"strings"
	"time"
)

const maintenanceInterval = 30 * 24 * time.Hour

// BikeImage is one picture attached to a bike.
type BikeImage struct {
	ID        int64  `json:"id"`
	ImageURL  string `json:"image_url"`
	IsPrimary bool   `json:"is_primary"`
}

// Bike is an inventory item; the backend calls it a product.
type Bike struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Price             float64     `json:"price"`
	Category          string      `json:"category"`
	StockQuantity     int         `json:"stock_quantity"`
	Specifications    string      `json:"specifications,omitempty"`
	Features          Features    `json:"features,omitempty"`
	Images            []BikeImage `json:"images,omitempty"`
	MaintenanceStatus string      `json:"maintenance_status,omitempty"`
	LastMaintenance   *time.Time  `json:"last_maintenance,omitempty"`
	CreatedAt         *time.Time  `json:"created_at,omitempty"`
	UpdatedAt         *time.Time  `json:"updated_at,omitempty"`
}

// Available reports whether at least one unit is in stock.
func (b Bike) Available() bool {
	return b.StockQuantity > 0
}

// NeedsMaintenance flags bikes that are out of stock, marked for service or
// have not been serviced within the maintenance interval.
func (b Bike) NeedsMaintenance(now time.Time) bool {
	if b.StockQuantity == 0 || b.MaintenanceStatus == "needs_service" {
		return true
	}
	return b.LastMaintenance != nil && b.LastMaintenance.Before(now.Add(-maintenanceInterval))
}

// Features accepts either a JSON array or a comma separated string.
type Features []string

func (f *Features) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = nil
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*f = append(*f, part)
		}
	}
	return nil
}

// Category groups bikes for pricing and reporting.
type Category struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Slug             string     `json:"slug,omitempty"`
	IsActive         bool       `json:"is_active"`
	TotalBikes       int        `json:"total_bikes,omitempty"`
	ActiveRentals    int        `json:"active_rentals,omitempty"`
	BasePrice        float64    `json:"base_price,omitempty"`
	MaintenanceCount int        `json:"maintenance_count,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}
