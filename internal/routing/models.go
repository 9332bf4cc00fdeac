// Package routing provides road condition lookups between intra-city locations.
package routing

import (
	"errors"
	"fmt"
)

// Sentinel errors for routing operations.
var (
	// ErrUnknownLocation indicates a location name is not in the city table.
	ErrUnknownLocation = errors.New("unknown location")
)

// Fallback values used when no explicit condition entry exists for a pair.
const (
	DefaultRoadQuality   = 0.8
	DefaultTrafficFactor = 1.5
)

// Condition describes the road between two locations.
type Condition struct {
	Distance      float64 // Grid distance between the locations
	RoadQuality   float64 // 1.0 = smooth, lower values are bumpier
	TrafficFactor float64 // 1.0 = clear, higher values are congested
}

// Cost returns the traffic-weighted travel cost of the segment.
func (c Condition) Cost() float64 {
	return c.Distance * c.TrafficFactor
}

// Pair is an unordered pair of location names in canonical (sorted) form.
type Pair struct {
	A string
	B string
}

// NewPair returns the canonical pair for two location names.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.A, p.B)
}

// Error provides detail about a failed location lookup.
type Error struct {
	Location string // Name that failed to resolve
	Err      error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("location %q: %v", e.Location, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
