package service

import (
	"cmp"
	"math"
	"slices"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
)

// MethodShares computes how payments split across payment methods. Shares are
// rounded to whole percents and ordered from most to least used.
func MethodShares(txs []domain.Transaction) []domain.MethodShare {
	if len(txs) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, tx := range txs {
		counts[firstNonEmpty(tx.PaymentMethod, "Other")]++
	}

	shares := make([]domain.MethodShare, 0, len(counts))
	for method, n := range counts {
		pct := int(math.Round(float64(n) * 100 / float64(len(txs))))
		shares = append(shares, domain.MethodShare{Method: method, Percentage: pct})
	}
	slices.SortFunc(shares, func(a, b domain.MethodShare) int {
		if c := cmp.Compare(b.Percentage, a.Percentage); c != 0 {
			return c
		}
		return cmp.Compare(a.Method, b.Method)
	})
	return shares
}
