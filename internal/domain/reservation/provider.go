package reservation

import "context"

// Source retrieves the current reservation snapshot from an external service.
// Implementations report failures as described errors, never partial data.
type Source interface {
	Name() string
	Ping(ctx context.Context) error
	Fetch(ctx context.Context, forceRefresh bool) ([]Reservation, error)
}
