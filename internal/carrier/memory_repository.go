package carrier

import (
	"context"
	"sync"

	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

// InMemoryRepository is an in-memory implementation of Repository.
// Used when no database is configured and in tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles []Profile
}

// NewInMemoryRepository creates a repository holding a copy of the given profiles.
func NewInMemoryRepository(profiles []Profile) *InMemoryRepository {
	r := &InMemoryRepository{}
	r.profiles = append(r.profiles, profiles...)
	return r
}

// ListByRoute returns the profiles of one route in insertion order.
func (r *InMemoryRepository) ListByRoute(_ context.Context, origin, destination string) ([]Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// FilterRoute allocates a fresh slice, so callers never share storage.
	return FilterRoute(r.profiles, origin, destination), nil
}

// Routes returns the distinct routes that have profiles.
func (r *InMemoryRepository) Routes(_ context.Context) ([]refdata.RouteKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[refdata.RouteKey]bool)
	var routes []refdata.RouteKey
	for _, p := range r.profiles {
		key := refdata.RouteKey{Origin: p.Origin, Destination: p.Destination}
		if !seen[key] {
			seen[key] = true
			routes = append(routes, key)
		}
	}
	return routes, nil
}

// ReplaceAll replaces every stored profile.
func (r *InMemoryRepository) ReplaceAll(_ context.Context, profiles []Profile) error {
	cpy := make([]Profile, len(profiles))
	copy(cpy, profiles)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = cpy
	return nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
