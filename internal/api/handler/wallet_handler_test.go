package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
)

type stubWalletRepo struct {
	txFn     func(ctx context.Context) ([]domain.Transaction, error)
	walletFn func(ctx context.Context) (*domain.Wallet, error)
}

func (s *stubWalletRepo) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.txFn(ctx)
}

func (s *stubWalletRepo) Wallet(ctx context.Context) (*domain.Wallet, error) { return s.walletFn(ctx) }

func decodeWallet(t *testing.T, rec *httptest.ResponseRecorder) walletResponse {
	t.Helper()
	var resp walletResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestWalletHandler_Live(t *testing.T) {
	repo := &stubWalletRepo{
		txFn: func(ctx context.Context) ([]domain.Transaction, error) {
			return []domain.Transaction{
				{ID: "1", Amount: 10, PaymentMethod: "Card"},
				{ID: "2", Amount: 20, PaymentMethod: "Card"},
				{ID: "3", Amount: 5, PaymentMethod: "Wallet"},
				{ID: "4", Amount: 5},
			}, nil
		},
		walletFn: func(ctx context.Context) (*domain.Wallet, error) {
			return &domain.Wallet{AvailableBalance: "120.00", LockedBalance: "0.00"}, nil
		},
	}
	fallbacks := ports.Fallbacks{Methods: []domain.MethodShare{{Method: "demo", Percentage: 100}}}
	h := NewWalletHandler(reposOf(ports.Repositories{Wallet: repo}), &fallbacks)

	e := echo.New()
	rec := httptest.NewRecorder()
	if err := h.Payments(newBoundContext(e, httptest.NewRequest(http.MethodGet, "/dashboard/wallet-payments", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeWallet(t, rec)
	if resp.Degraded || resp.Transactions.Fallback || len(resp.Transactions.Data) != 4 {
		t.Fatalf("expected live data, got %+v", resp)
	}
	if resp.Wallet.Data.AvailableBalance != "120.00" {
		t.Fatalf("unexpected wallet %+v", resp.Wallet.Data)
	}
	if len(resp.Methods) != 3 || resp.Methods[0].Method != "Card" || resp.Methods[0].Percentage != 50 {
		t.Fatalf("methods should be computed from live data, got %+v", resp.Methods)
	}
}

func TestWalletHandler_Fallback(t *testing.T) {
	repo := &stubWalletRepo{
		txFn: func(ctx context.Context) ([]domain.Transaction, error) {
			return nil, &domain.NetworkError{Op: "GET /api/v1/transactions/", Err: errors.New("refused")}
		},
		walletFn: func(ctx context.Context) (*domain.Wallet, error) {
			return nil, &domain.APIError{Status: http.StatusInternalServerError}
		},
	}
	fallbacks := ports.Fallbacks{
		Transactions: []domain.Transaction{{ID: "TX001", Amount: 45.99}},
		Wallet:       &domain.Wallet{AvailableBalance: "0.00"},
		Methods:      []domain.MethodShare{{Method: "Credit Card", Percentage: 100}},
	}
	h := NewWalletHandler(reposOf(ports.Repositories{Wallet: repo}), &fallbacks)

	e := echo.New()
	rec := httptest.NewRecorder()
	if err := h.Payments(newBoundContext(e, httptest.NewRequest(http.MethodGet, "/dashboard/wallet-payments", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeWallet(t, rec)
	if !resp.Degraded || !resp.Transactions.Fallback || !resp.Wallet.Fallback {
		t.Fatalf("expected substituted data, got %+v", resp)
	}
	if len(resp.Methods) != 1 || resp.Methods[0].Method != "Credit Card" {
		t.Fatalf("expected demo methods, got %+v", resp.Methods)
	}
}

func TestWalletHandler_NoFallback(t *testing.T) {
	repo := &stubWalletRepo{
		txFn: func(ctx context.Context) ([]domain.Transaction, error) {
			return nil, &domain.APIError{Status: http.StatusInternalServerError}
		},
		walletFn: func(ctx context.Context) (*domain.Wallet, error) { return &domain.Wallet{}, nil },
	}
	h := NewWalletHandler(reposOf(ports.Repositories{Wallet: repo}), nil)

	e := echo.New()
	err := h.Payments(newBoundContext(e, httptest.NewRequest(http.MethodGet, "/dashboard/wallet-payments", nil), httptest.NewRecorder()))

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected the backend error, got %v", err)
	}
}

func TestWalletHandler_SessionExpiredNotMasked(t *testing.T) {
	repo := &stubWalletRepo{
		txFn:     func(ctx context.Context) ([]domain.Transaction, error) { return nil, domain.ErrSessionExpired },
		walletFn: func(ctx context.Context) (*domain.Wallet, error) { return nil, domain.ErrSessionExpired },
	}
	fallbacks := ports.Fallbacks{Transactions: []domain.Transaction{}, Wallet: &domain.Wallet{}}
	h := NewWalletHandler(reposOf(ports.Repositories{Wallet: repo}), &fallbacks)

	e := echo.New()
	err := h.Payments(newBoundContext(e, httptest.NewRequest(http.MethodGet, "/dashboard/wallet-payments", nil), httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}
