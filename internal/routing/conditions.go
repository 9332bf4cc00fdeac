package routing

import (
	"math"

	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

// ConditionModel answers road condition queries for a fixed city table.
// It is built once from a catalog and is read-only afterwards.
type ConditionModel struct {
	points   map[string]refdata.Point
	explicit map[Pair]Condition
}

// NewConditionModel builds a condition model from the catalog's locations and
// explicit condition entries. Entry keys are normalized so the table order of
// each pair does not matter.
func NewConditionModel(catalog *refdata.Catalog) *ConditionModel {
	m := &ConditionModel{
		points:   make(map[string]refdata.Point),
		explicit: make(map[Pair]Condition),
	}
	for _, loc := range catalog.Locations() {
		m.points[loc.Name] = loc.Point
	}
	for _, c := range catalog.Conditions() {
		m.explicit[NewPair(c.From, c.To)] = Condition{
			Distance:      c.Distance,
			RoadQuality:   c.RoadQuality,
			TrafficFactor: c.TrafficFactor,
		}
	}
	return m
}

// Validate returns an *Error wrapping ErrUnknownLocation for the first name
// that is not in the city table.
func (m *ConditionModel) Validate(names ...string) error {
	for _, name := range names {
		if _, ok := m.points[name]; !ok {
			return &Error{Location: name, Err: ErrUnknownLocation}
		}
	}
	return nil
}

// Location resolves a name to its grid coordinate.
func (m *ConditionModel) Location(name string) (refdata.Point, error) {
	p, ok := m.points[name]
	if !ok {
		return refdata.Point{}, &Error{Location: name, Err: ErrUnknownLocation}
	}
	return p, nil
}

// ConditionOf returns the road condition between a and b.
// An explicit entry for the unordered pair is returned verbatim; otherwise the
// Euclidean distance between the two points is used with default quality and
// traffic. Unknown names resolve to the grid origin, so callers validate first.
func (m *ConditionModel) ConditionOf(a, b string) Condition {
	if c, ok := m.explicit[NewPair(a, b)]; ok {
		return c
	}
	pa, pb := m.points[a], m.points[b]
	return Condition{
		Distance:      math.Hypot(pa.X-pb.X, pa.Y-pb.Y),
		RoadQuality:   DefaultRoadQuality,
		TrafficFactor: DefaultTrafficFactor,
	}
}

// HasExplicit reports whether the pair has an explicit table entry.
func (m *ConditionModel) HasExplicit(a, b string) bool {
	_, ok := m.explicit[NewPair(a, b)]
	return ok
}
