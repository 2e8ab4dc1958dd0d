package service

import (
	"context"
	"errors"

	"github.com/garimobility/admin-dashboard/internal/core/domain"
	"github.com/garimobility/admin-dashboard/internal/pkg/metrics"
)

// Fetch runs fn and tags the outcome. When fn fails and the caller supplied
// fallback data, the fallback is returned with Fallback set. Session expiry is
// never masked by a fallback.
func Fetch[T any](ctx context.Context, resource string, fn func(context.Context) (T, error), fallback *T) domain.Result[T] {
	data, err := fn(ctx)
	if err == nil {
		return domain.Live(data)
	}
	if fallback == nil || errors.Is(err, domain.ErrSessionExpired) {
		return domain.Failed[T](err)
	}
	metrics.FallbackServedTotal.WithLabelValues(resource).Inc()
	return domain.Substituted(*fallback, err)
}
