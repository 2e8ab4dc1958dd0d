package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
	"github.com/garimobility/admin-dashboard/internal/core/service"
)

type WalletHandler struct {
	repos     RepositoryFactory
	fallbacks *ports.Fallbacks
}

func NewWalletHandler(repos RepositoryFactory, fallbacks *ports.Fallbacks) *WalletHandler {
	return &WalletHandler{repos: repos, fallbacks: fallbacks}
}

// Payments handles GET /dashboard/wallet-payments.
//
// @Summary      Wallet balance and payment history
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  walletResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard/wallet-payments [get]
func (h *WalletHandler) Payments(c echo.Context) error {
	repos, err := ctxRepos(c, h.repos)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var (
		txFallback     *[]domain.Transaction
		walletFallback **domain.Wallet
	)
	if h.fallbacks != nil {
		txFallback = &h.fallbacks.Transactions
		walletFallback = &h.fallbacks.Wallet
	}

	resp := walletResponse{
		Transactions: service.Fetch(ctx, "transactions", repos.Wallet.Transactions, txFallback),
		Wallet:       service.Fetch(ctx, "wallet", repos.Wallet.Wallet, walletFallback),
	}
	if !resp.Transactions.Usable() {
		return resp.Transactions.Err
	}
	if !resp.Wallet.Usable() {
		return resp.Wallet.Err
	}

	resp.Degraded = resp.Transactions.Fallback || resp.Wallet.Fallback
	if resp.Transactions.Fallback && h.fallbacks != nil {
		resp.Methods = h.fallbacks.Methods
	} else {
		resp.Methods = service.MethodShares(resp.Transactions.Data)
	}
	return c.JSON(http.StatusOK, resp)
}
