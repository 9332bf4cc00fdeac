package carrier

import (
	"context"

	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

// Repository defines the interface for carrier profile persistence.
type Repository interface {
	// ListByRoute returns the profiles of one route in insertion order.
	// Returns an empty slice, not an error, when the route has no profiles.
	ListByRoute(ctx context.Context, origin, destination string) ([]Profile, error)

	// Routes returns the distinct routes that have profiles, in first-insertion order.
	Routes(ctx context.Context) ([]refdata.RouteKey, error)

	// ReplaceAll atomically replaces every stored profile.
	ReplaceAll(ctx context.Context, profiles []Profile) error
}
