package ports

import "context"

// Requester performs authenticated backend calls on behalf of one session.
// A 401 answer surfaces as domain.ErrSessionExpired.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any) error
}
