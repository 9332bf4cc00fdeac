// Package planner finds the minimum-cost visiting order of an intra-city
// waypoint set.
package planner

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/logisticsnet/logisticsnet/internal/refdata"
	"github.com/logisticsnet/logisticsnet/internal/routing"
)

// Waypoint count limits.
const (
	MinWaypoints = 3
	MaxWaypoints = 5
)

// Fragile cargo pays a penalty on rough roads.
const (
	fragilePenalty      = 1.5
	roughRoadQualityMax = 0.9
)

// Sentinel errors for route planning.
var (
	// ErrInvalidWaypointCount indicates a waypoint set outside [MinWaypoints, MaxWaypoints].
	ErrInvalidWaypointCount = errors.New("invalid waypoint count")
	// ErrDuplicateWaypoint indicates a waypoint listed more than once.
	ErrDuplicateWaypoint = errors.New("duplicate waypoint")
	// ErrInfeasible indicates no visiting order satisfies the cargo constraints.
	ErrInfeasible = errors.New("no feasible route")
)

// ProductType is the kind of goods being delivered.
type ProductType string

const (
	ProductDocuments   ProductType = "Documents"
	ProductFood        ProductType = "Food"
	ProductElectronics ProductType = "Electronics"
)

// ProductTypes lists all product types in canonical order.
var ProductTypes = []ProductType{ProductDocuments, ProductFood, ProductElectronics}

// Cargo describes the constraints of a delivery.
type Cargo struct {
	Fragile          bool
	NeedsColdStorage bool
	ProductType      ProductType
}

// Plan is the cheapest visiting order of a waypoint set.
type Plan struct {
	Order []string `json:"order"`
	Cost  float64  `json:"cost"`
}

// FirstStop returns the first location of the order.
func (p *Plan) FirstStop() string {
	if len(p.Order) == 0 {
		return ""
	}
	return p.Order[0]
}

// Planner plans routes over the city locations of a catalog.
// It holds no mutable state and is safe for concurrent use.
type Planner struct {
	conditions *routing.ConditionModel
	catalog    *refdata.Catalog
}

// New creates a planner over the given catalog.
func New(catalog *refdata.Catalog) *Planner {
	return &Planner{
		conditions: routing.NewConditionModel(catalog),
		catalog:    catalog,
	}
}

// Conditions returns the condition model the planner prices segments with.
func (p *Planner) Conditions() *routing.ConditionModel {
	return p.conditions
}

// PlanRoute returns the minimum-cost order visiting every waypoint once.
//
// Orders are enumerated lexicographically over the sorted waypoint set and
// the first order with the strictly lowest cost wins, so the result does not
// depend on input order. Returns ErrInfeasible when the cargo needs cold
// storage and no waypoint provides it.
func (p *Planner) PlanRoute(waypoints []string, cargo Cargo) (*Plan, error) {
	stops, err := p.canonicalize(waypoints)
	if err != nil {
		return nil, err
	}

	// Every order visits the same set, so feasibility is a property of the set.
	if cargo.NeedsColdStorage && !slices.ContainsFunc(stops, p.catalog.IsColdStorage) {
		return nil, ErrInfeasible
	}

	n := len(stops)
	costs := make([][]float64, n)
	for i := range stops {
		costs[i] = make([]float64, n)
		for j := range stops {
			if i != j {
				costs[i][j] = p.segmentCost(stops[i], stops[j], cargo.Fragile)
			}
		}
	}

	s := search{
		costs: costs,
		order: make([]int, 0, n),
		used:  make([]bool, n),
		best:  math.Inf(1),
	}
	s.visit(0, 0)

	if s.bestOrder == nil {
		return nil, ErrInfeasible
	}

	order := make([]string, n)
	for i, idx := range s.bestOrder {
		order[i] = stops[idx]
	}
	return &Plan{Order: order, Cost: s.best}, nil
}

// OrderCost returns the cost of visiting the locations in the given order.
func (p *Planner) OrderCost(order []string, fragile bool) (float64, error) {
	if err := p.conditions.Validate(order...); err != nil {
		return 0, err
	}
	var total float64
	for i := 1; i < len(order); i++ {
		total += p.segmentCost(order[i-1], order[i], fragile)
	}
	return total, nil
}

func (p *Planner) segmentCost(a, b string, fragile bool) float64 {
	c := p.conditions.ConditionOf(a, b)
	cost := c.Cost()
	if fragile && c.RoadQuality < roughRoadQualityMax {
		cost *= fragilePenalty
	}
	return cost
}

func (p *Planner) canonicalize(waypoints []string) ([]string, error) {
	if len(waypoints) < MinWaypoints || len(waypoints) > MaxWaypoints {
		return nil, fmt.Errorf("%w: got %d, want %d to %d", ErrInvalidWaypointCount, len(waypoints), MinWaypoints, MaxWaypoints)
	}

	stops := slices.Clone(waypoints)
	slices.Sort(stops)
	for i := 1; i < len(stops); i++ {
		if stops[i] == stops[i-1] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWaypoint, stops[i])
		}
	}

	if err := p.conditions.Validate(stops...); err != nil {
		return nil, err
	}
	return stops, nil
}

// search is a depth-first enumeration of permutations in lexicographic order.
type search struct {
	costs     [][]float64
	order     []int
	used      []bool
	best      float64
	bestOrder []int
}

func (s *search) visit(depth int, running float64) {
	n := len(s.costs)
	if depth == n {
		if running < s.best {
			s.best = running
			s.bestOrder = slices.Clone(s.order)
		}
		return
	}

	for next := 0; next < n; next++ {
		if s.used[next] {
			continue
		}

		step := 0.0
		if depth > 0 {
			step = s.costs[s.order[depth-1]][next]
		}
		// Segment costs are non-negative, so a partial order that already
		// reaches the best cost can never win.
		if running+step >= s.best {
			continue
		}

		s.used[next] = true
		s.order = append(s.order, next)

		s.visit(depth+1, running+step)

		s.order = s.order[:len(s.order)-1]
		s.used[next] = false
	}
}
