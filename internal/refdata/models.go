// Package refdata provides the immutable reference data used by the carrier
// ranking and route planning engines.
package refdata

import "errors"

// Sentinel errors for reference data lookups.
var (
	// ErrMissingReferenceData indicates a name has no entry in the catalog.
	ErrMissingReferenceData = errors.New("missing reference data")
	// ErrInvalidCatalog indicates the catalog data failed validation.
	ErrInvalidCatalog = errors.New("invalid reference catalog")
)

// Carrier holds static contact and hub metadata for a logistics company.
// It is used for presentation only and never influences scoring.
type Carrier struct {
	Name          string `yaml:"name" json:"name"`
	Domain        string `yaml:"domain" json:"domain"`
	Hub           string `yaml:"hub" json:"hub"`
	BhopalAddress string `yaml:"bhopal_address" json:"bhopalAddress"`
	CareNumber    string `yaml:"care_number" json:"careNumber"`

	// Promoted carriers receive the in-house discount when profiles are generated.
	Promoted bool `yaml:"promoted,omitempty" json:"-"`
}

// Route is an inter-city origin/destination pair with base metrics.
type Route struct {
	Origin      string  `yaml:"origin"`
	Destination string  `yaml:"destination"`
	BasePrice   float64 `yaml:"base_price"`
	BaseHours   float64 `yaml:"base_hours"`
}

// Warehouse is the storage footprint of a carrier at a location.
type Warehouse struct {
	Location string  `yaml:"location"`
	Carrier  string  `yaml:"carrier"`
	SizeSqft float64 `yaml:"size_sqft"`
}

// Review is a location-specific review score for a carrier on a route.
type Review struct {
	Origin      string  `yaml:"origin"`
	Destination string  `yaml:"destination"`
	Carrier     string  `yaml:"carrier"`
	Score       float64 `yaml:"score"`
}

// Point is a position on the virtual city grid.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Location is a named intra-city stop.
type Location struct {
	Name        string `yaml:"name"`
	Point       Point  `yaml:",inline"`
	ColdStorage bool   `yaml:"cold_storage,omitempty"`
}

// Condition is an explicit road condition entry between two locations.
type Condition struct {
	From          string  `yaml:"from"`
	To            string  `yaml:"to"`
	Distance      float64 `yaml:"distance"`
	RoadQuality   float64 `yaml:"road_quality"`
	TrafficFactor float64 `yaml:"traffic_factor"`
}

// Data is the raw, mutable form of a catalog. It is the YAML document shape
// and the input to NewCatalog.
type Data struct {
	Carriers   []Carrier   `yaml:"carriers"`
	Routes     []Route     `yaml:"routes"`
	Warehouses []Warehouse `yaml:"warehouses"`
	Reviews    []Review    `yaml:"reviews"`
	Locations  []Location  `yaml:"locations"`
	Conditions []Condition `yaml:"conditions"`
}
