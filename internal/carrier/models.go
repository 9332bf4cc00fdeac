// Package carrier provides multi-criteria ranking of logistics carriers.
package carrier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/logisticsnet/logisticsnet/internal/api/models"
)

// Sentinel errors for carrier ranking.
var (
	// ErrNoRouteData indicates no carrier profiles exist for the requested route.
	ErrNoRouteData = errors.New("no carrier data for route")
	// ErrUnknownPriority indicates a priority name has no weight template.
	ErrUnknownPriority = errors.New("unknown priority")
	// ErrNoPriorities indicates a query without any priority.
	ErrNoPriorities = errors.New("at least one priority is required")
	// ErrInvalidFragility indicates a fragility value outside Low, Medium, High.
	ErrInvalidFragility = errors.New("invalid fragility")
)

// Profile is the raw performance record of one carrier on one route.
type Profile struct {
	Origin            string  `json:"origin"`
	Destination       string  `json:"destination"`
	Carrier           string  `json:"carrier"`
	Price             float64 `json:"price"`
	SafetyRating      float64 `json:"safetyRating"`
	DeliveryTimeHours float64 `json:"deliveryTimeHours"`
	WarehouseSqft     float64 `json:"warehouseSqft"`
	LocationReview    float64 `json:"locationReview"`
}

// Fragility is the cargo fragility level.
type Fragility string

const (
	FragilityLow    Fragility = "Low"
	FragilityMedium Fragility = "Medium"
	FragilityHigh   Fragility = "High"
)

// Fragilities lists all fragility levels in canonical order.
var Fragilities = []Fragility{FragilityLow, FragilityMedium, FragilityHigh}

// ParseFragility parses a fragility level, ignoring case.
func ParseFragility(s string) (Fragility, error) {
	for _, f := range Fragilities {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFragility, s)
}

// Priority selects a named weight template.
type Priority string

const (
	PriorityCost      Priority = "cost"
	PrioritySpeed     Priority = "speed"
	PrioritySafety    Priority = "safety"
	PriorityWarehouse Priority = "warehouse"
)

// Priorities lists all priorities in canonical order.
var Priorities = []Priority{PriorityCost, PrioritySpeed, PrioritySafety, PriorityWarehouse}

// ParsePriorities parses priority names. Duplicates are kept because weights
// accumulate per occurrence.
func ParsePriorities(names []string) ([]Priority, error) {
	if len(names) == 0 {
		return nil, ErrNoPriorities
	}
	out := make([]Priority, 0, len(names))
	for _, name := range names {
		p := Priority(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := templates[p]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPriority, name)
		}
		out = append(out, p)
	}
	return out, nil
}

// Query is a ranking request for one route.
type Query struct {
	Origin      string
	Destination string
	Priorities  []Priority
	Fragility   Fragility
}

// Route returns the query route as "origin -> destination".
func (q Query) Route() string {
	return q.Origin + " -> " + q.Destination
}

// Scores holds the normalized [0,1] score of each criterion.
type Scores struct {
	Price     float64 `json:"price"`
	Speed     float64 `json:"speed"`
	Safety    float64 `json:"safety"`
	Warehouse float64 `json:"warehouse"`
	Review    float64 `json:"review"`
}

// Scored is a profile with its normalized scores and combined ranking score.
type Scored struct {
	Profile  Profile `json:"profile"`
	Scores   Scores  `json:"scores"`
	Combined float64 `json:"combined"`
	Position int     `json:"position"` // index in the route's original row order
}

// Pick is a recommended carrier: its name merged with its reference metadata.
// Metadata fields are empty when the carrier is missing from the catalog.
type Pick struct {
	Name          string `json:"name"`
	Domain        string `json:"domain,omitempty"`
	Hub           string `json:"hub,omitempty"`
	BhopalAddress string `json:"bhopalAddress,omitempty"`
	CareNumber    string `json:"careNumber,omitempty"`
}

// Recommendation is the result of ranking carriers on a route.
type Recommendation struct {
	TopChoice      Pick     `json:"topChoice"`
	BalancedOption *Pick    `json:"balancedOption,omitempty"` // nil when the route has a single carrier
	ValuePick      Pick     `json:"valuePick"`
	Ranking        []Scored `json:"ranking,omitempty"`
}

// ValidationError represents query validation errors.
type ValidationError struct {
	Errors []models.FieldError
	causes []error
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// Unwrap exposes the sentinel errors behind the field errors, so
// errors.Is(err, ErrUnknownPriority) holds for an invalid query.
func (e *ValidationError) Unwrap() []error {
	return e.causes
}

func (e *ValidationError) add(field, message string, cause error) {
	e.Errors = append(e.Errors, models.FieldError{Field: field, Message: message})
	if cause != nil {
		e.causes = append(e.causes, cause)
	}
}

// NewQuery parses and validates raw query input. All problems are reported
// together in a *ValidationError.
func NewQuery(origin, destination string, priorities []string, fragility string) (Query, error) {
	q := Query{
		Origin:      strings.TrimSpace(origin),
		Destination: strings.TrimSpace(destination),
	}
	verr := &ValidationError{}

	if q.Origin == "" {
		verr.add("origin", "is required", nil)
	}
	if q.Destination == "" {
		verr.add("destination", "is required", nil)
	}

	parsed, err := ParsePriorities(priorities)
	switch {
	case errors.Is(err, ErrNoPriorities):
		verr.add("priorities", "must contain at least one priority", err)
	case err != nil:
		verr.add("priorities", "must only contain cost, speed, safety or warehouse", err)
	default:
		q.Priorities = parsed
	}

	f, err := ParseFragility(fragility)
	if err != nil {
		verr.add("fragility", "must be one of Low, Medium, High", err)
	}
	q.Fragility = f

	if len(verr.Errors) > 0 {
		return Query{}, verr
	}
	return q, nil
}
