package domain

import (
	"strings"
	"time"
)

// LoanStatus is the review state of a loan application.
type LoanStatus string

const (
	LoanPending     LoanStatus = "pending"
	LoanUnderReview LoanStatus = "under_review"
	LoanApproved    LoanStatus = "approved"
	LoanRejected    LoanStatus = "rejected"
)

// ParseLoanStatus normalises user input and rejects unknown values.
func ParseLoanStatus(s string) (LoanStatus, error) {
	switch st := LoanStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case LoanPending, LoanUnderReview, LoanApproved, LoanRejected:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Open reports whether the application still awaits a decision.
func (s LoanStatus) Open() bool {
	return s == LoanPending || s == LoanUnderReview
}

// LoanProduct is the bike an application is financing.
type LoanProduct struct {
	ID       FlexID    `json:"id"`
	Name     string    `json:"name"`
	Price    FlexFloat `json:"price"`
	Category string    `json:"category"`
	Currency string    `json:"currency,omitempty"`
}

// LoanApplication is a customer's request to finance a bike.
type LoanApplication struct {
	ID               FlexID       `json:"id"`
	FirstName        string       `json:"first_name"`
	LastName         string       `json:"last_name"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone,omitempty"`
	Address          string       `json:"address,omitempty"`
	City             string       `json:"city,omitempty"`
	EmploymentStatus string       `json:"employment_status,omitempty"`
	EmployerName     string       `json:"employer_name,omitempty"`
	MonthlyIncome    float64      `json:"monthly_income,omitempty"`
	LoanAmount       float64      `json:"loan_amount"`
	LoanPurpose      string       `json:"loan_purpose,omitempty"`
	Duration         string       `json:"duration,omitempty"`
	Status           LoanStatus   `json:"status"`
	Product          *LoanProduct `json:"product,omitempty"`
	Notes            string       `json:"notes,omitempty"`
	ApprovedBy       string       `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time   `json:"approved_at,omitempty"`
	RejectionReason  string       `json:"rejection_reason,omitempty"`
	CreatedAt        *time.Time   `json:"created_at,omitempty"`
	UpdatedAt        *time.Time   `json:"updated_at,omitempty"`
}

// StatusUpdate is the PATCH body sent when an application changes status.
type StatusUpdate struct {
	Status          LoanStatus `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
}

// NewStatusUpdate builds the payload for a status change: approvals are stamped
// with the decision time and rejections carry their reason.
func NewStatusUpdate(status LoanStatus, reason string, now time.Time) StatusUpdate {
	u := StatusUpdate{Status: status}
	switch status {
	case LoanApproved:
		at := now.UTC()
		u.ApprovedAt = &at
	case LoanRejected:
		u.RejectionReason = strings.TrimSpace(reason)
	}
	return u
}

// LoanQueue is the loan applications screen view.
type LoanQueue struct {
	Applications []LoanApplication `json:"applications"`
	Pending      int               `json:"pending"`
	UnderReview  int               `json:"under_review"`
	Total        int               `json:"total"`
}
