package refdata

import (
	"fmt"
	"strings"
)

// DefaultReview is the location review score used when a carrier has no
// review for a route.
const DefaultReview = 3.8

// Catalog is an immutable, validated view over reference data.
// All accessors are safe for concurrent use.
type Catalog struct {
	carriers     []Carrier
	carrierIndex map[string]int

	routes     []Route
	routeIndex map[RouteKey]int

	warehouses map[warehouseKey]float64
	reviews    map[reviewKey]float64

	locations     []Location
	locationIndex map[string]int

	conditions []Condition
}

// RouteKey identifies a directed inter-city route.
type RouteKey struct {
	Origin      string
	Destination string
}

func (k RouteKey) String() string {
	return k.Origin + " -> " + k.Destination
}

type warehouseKey struct {
	location string
	carrier  string
}

type reviewKey struct {
	origin      string
	destination string
	carrier     string
}

// NewCatalog validates the data and builds an immutable catalog from it.
func NewCatalog(d Data) (*Catalog, error) {
	c := &Catalog{
		carrierIndex:  make(map[string]int, len(d.Carriers)),
		routeIndex:    make(map[RouteKey]int, len(d.Routes)),
		warehouses:    make(map[warehouseKey]float64, len(d.Warehouses)),
		reviews:       make(map[reviewKey]float64, len(d.Reviews)),
		locationIndex: make(map[string]int, len(d.Locations)),
	}

	for _, carrier := range d.Carriers {
		if strings.TrimSpace(carrier.Name) == "" {
			return nil, fmt.Errorf("%w: carrier with empty name", ErrInvalidCatalog)
		}
		if _, dup := c.carrierIndex[carrier.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate carrier %q", ErrInvalidCatalog, carrier.Name)
		}
		c.carrierIndex[carrier.Name] = len(c.carriers)
		c.carriers = append(c.carriers, carrier)
	}

	for _, route := range d.Routes {
		if route.Origin == "" || route.Destination == "" {
			return nil, fmt.Errorf("%w: route with empty endpoint", ErrInvalidCatalog)
		}
		key := RouteKey{Origin: route.Origin, Destination: route.Destination}
		if _, dup := c.routeIndex[key]; dup {
			return nil, fmt.Errorf("%w: duplicate route %s", ErrInvalidCatalog, key)
		}
		if route.BasePrice <= 0 || route.BaseHours <= 0 {
			return nil, fmt.Errorf("%w: route %s has non-positive base metrics", ErrInvalidCatalog, key)
		}
		c.routeIndex[key] = len(c.routes)
		c.routes = append(c.routes, route)
	}

	for _, w := range d.Warehouses {
		if w.SizeSqft < 0 {
			return nil, fmt.Errorf("%w: negative warehouse size for %s at %s", ErrInvalidCatalog, w.Carrier, w.Location)
		}
		c.warehouses[warehouseKey{location: w.Location, carrier: w.Carrier}] = w.SizeSqft
	}

	for _, r := range d.Reviews {
		if r.Score < 0 || r.Score > 5 {
			return nil, fmt.Errorf("%w: review %.2f for %s out of range [0,5]", ErrInvalidCatalog, r.Score, r.Carrier)
		}
		c.reviews[reviewKey{origin: r.Origin, destination: r.Destination, carrier: r.Carrier}] = r.Score
	}

	for _, loc := range d.Locations {
		if strings.TrimSpace(loc.Name) == "" {
			return nil, fmt.Errorf("%w: location with empty name", ErrInvalidCatalog)
		}
		if _, dup := c.locationIndex[loc.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate location %q", ErrInvalidCatalog, loc.Name)
		}
		c.locationIndex[loc.Name] = len(c.locations)
		c.locations = append(c.locations, loc)
	}

	pairs := make(map[[2]string]bool, len(d.Conditions))
	for _, cond := range d.Conditions {
		if err := c.validateCondition(cond); err != nil {
			return nil, err
		}
		// Conditions are symmetric, so A/B and B/A name the same road.
		pair := [2]string{min(cond.From, cond.To), max(cond.From, cond.To)}
		if pairs[pair] {
			return nil, fmt.Errorf("%w: duplicate condition %s/%s", ErrInvalidCatalog, pair[0], pair[1])
		}
		pairs[pair] = true
		c.conditions = append(c.conditions, cond)
	}

	return c, nil
}

func (c *Catalog) validateCondition(cond Condition) error {
	for _, name := range []string{cond.From, cond.To} {
		if _, ok := c.locationIndex[name]; !ok {
			return fmt.Errorf("%w: condition references unknown location %q", ErrInvalidCatalog, name)
		}
	}
	if cond.From == cond.To {
		return fmt.Errorf("%w: condition %q has identical endpoints", ErrInvalidCatalog, cond.From)
	}
	if cond.Distance < 0 {
		return fmt.Errorf("%w: condition %s/%s has negative distance", ErrInvalidCatalog, cond.From, cond.To)
	}
	if cond.RoadQuality <= 0 || cond.RoadQuality > 1 {
		return fmt.Errorf("%w: condition %s/%s road quality must be in (0,1]", ErrInvalidCatalog, cond.From, cond.To)
	}
	if cond.TrafficFactor < 1 {
		return fmt.Errorf("%w: condition %s/%s traffic factor must be >= 1", ErrInvalidCatalog, cond.From, cond.To)
	}
	return nil
}

// Carrier returns the metadata for a carrier.
// Returns ErrMissingReferenceData if the carrier is unknown.
func (c *Catalog) Carrier(name string) (Carrier, error) {
	i, ok := c.carrierIndex[name]
	if !ok {
		return Carrier{}, fmt.Errorf("carrier %q: %w", name, ErrMissingReferenceData)
	}
	return c.carriers[i], nil
}

// Carriers returns all carriers in catalog order.
func (c *Catalog) Carriers() []Carrier {
	out := make([]Carrier, len(c.carriers))
	copy(out, c.carriers)
	return out
}

// CarrierNames returns all carrier names in catalog order.
func (c *Catalog) CarrierNames() []string {
	names := make([]string, len(c.carriers))
	for i, carrier := range c.carriers {
		names[i] = carrier.Name
	}
	return names
}

// Routes returns all routes in catalog order.
func (c *Catalog) Routes() []Route {
	out := make([]Route, len(c.routes))
	copy(out, c.routes)
	return out
}

// Route returns the base metrics for a route.
func (c *Catalog) Route(origin, destination string) (Route, bool) {
	i, ok := c.routeIndex[RouteKey{Origin: origin, Destination: destination}]
	if !ok {
		return Route{}, false
	}
	return c.routes[i], true
}

// WarehouseSqft returns the warehouse size of a carrier at a location, or 0.
func (c *Catalog) WarehouseSqft(location, carrier string) float64 {
	return c.warehouses[warehouseKey{location: location, carrier: carrier}]
}

// Review returns the location review for a carrier on a route, or
// DefaultReview when none is recorded.
func (c *Catalog) Review(origin, destination, carrier string) float64 {
	if score, ok := c.reviews[reviewKey{origin: origin, destination: destination, carrier: carrier}]; ok {
		return score
	}
	return DefaultReview
}

// Location returns a city location by name.
func (c *Catalog) Location(name string) (Location, bool) {
	i, ok := c.locationIndex[name]
	if !ok {
		return Location{}, false
	}
	return c.locations[i], true
}

// Locations returns all city locations in catalog order.
func (c *Catalog) Locations() []Location {
	out := make([]Location, len(c.locations))
	copy(out, c.locations)
	return out
}

// LocationNames returns all city location names in catalog order.
func (c *Catalog) LocationNames() []string {
	names := make([]string, len(c.locations))
	for i, loc := range c.locations {
		names[i] = loc.Name
	}
	return names
}

// IsColdStorage reports whether a location supports refrigerated handling.
func (c *Catalog) IsColdStorage(name string) bool {
	loc, ok := c.Location(name)
	return ok && loc.ColdStorage
}

// Conditions returns the explicit route condition entries.
func (c *Catalog) Conditions() []Condition {
	out := make([]Condition, len(c.conditions))
	copy(out, c.conditions)
	return out
}
