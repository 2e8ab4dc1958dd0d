package domain

import "time"

// Transaction is a single money movement shown on the wallet screen.
type Transaction struct {
	ID            FlexID     `json:"id"`
	Type          string     `json:"type"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency,omitempty"`
	Status        string     `json:"status"`
	Customer      string     `json:"customer,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// Wallet is the platform balance summary.
type Wallet struct {
	AvailableBalance string     `json:"available_balance"`
	LockedBalance    string     `json:"locked_balance"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// MethodShare is the percentage of payments made through one method.
type MethodShare struct {
	Method     string `json:"method"`
	Percentage int    `json:"percentage"`
}
