package models

import (
	"fmt"
	"slices"
	"strings"
)

// Waypoint limits accepted by the route planner.
const (
	MinWaypoints = 3
	MaxWaypoints = 5
)

// ProductTypes lists the accepted product types.
var ProductTypes = []string{"Documents", "Food", "Electronics"}

// PlanRequest is the request body for planning an intra-city route.
type PlanRequest struct {
	Waypoints        []string `json:"waypoints"`
	Fragile          bool     `json:"fragile"`
	NeedsColdStorage bool     `json:"needsColdStorage"`
	ProductType      string   `json:"productType,omitempty"`
}

// Validate checks the request shape. Location names are checked by the planner.
func (r *PlanRequest) Validate() []FieldError {
	var errs []FieldError

	if n := len(r.Waypoints); n < MinWaypoints || n > MaxWaypoints {
		errs = append(errs, FieldError{
			Field:   "waypoints",
			Message: fmt.Sprintf("must contain %d to %d locations", MinWaypoints, MaxWaypoints),
			Code:    "OUT_OF_RANGE",
		})
	}
	for i, w := range r.Waypoints {
		if strings.TrimSpace(w) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("waypoints[%d]", i),
				Message: "is required",
				Code:    "REQUIRED",
			})
		}
	}
	if r.ProductType != "" && !slices.Contains(ProductTypes, r.ProductType) {
		errs = append(errs, FieldError{
			Field:   "productType",
			Message: "must be one of " + strings.Join(ProductTypes, ", "),
			Code:    "INVALID",
		})
	}

	return errs
}

// PlanResponse is the response for a planned route.
type PlanResponse struct {
	Order     []string `json:"order"`
	Cost      float64  `json:"cost"`
	FirstStop string   `json:"firstStop"`
}

// Point is a position on the city grid.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Location is an intra-city stop.
type Location struct {
	Name        string `json:"name"`
	Point       Point  `json:"point"`
	ColdStorage bool   `json:"coldStorage"`
}

// LocationListResponse is the response for listing locations.
type LocationListResponse struct {
	Items []Location `json:"items"`
}
