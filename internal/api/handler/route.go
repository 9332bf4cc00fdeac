package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/logisticsnet/logisticsnet/internal/api/models"
	"github.com/logisticsnet/logisticsnet/internal/api/response"
	"github.com/logisticsnet/logisticsnet/internal/planner"
	"github.com/logisticsnet/logisticsnet/internal/refdata"
	"github.com/logisticsnet/logisticsnet/internal/routing"
)

const tracerName = "github.com/logisticsnet/logisticsnet/internal/api/handler"

// RouteHandler handles intra-city route planning endpoints.
type RouteHandler struct {
	planner *planner.Planner
	catalog *refdata.Catalog
	logger  zerolog.Logger
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(p *planner.Planner, catalog *refdata.Catalog, logger zerolog.Logger) *RouteHandler {
	return &RouteHandler{planner: p, catalog: catalog, logger: logger}
}

// ListLocations handles GET /v1/locations - city locations available as waypoints.
func (h *RouteHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations := h.catalog.Locations()
	items := make([]models.Location, 0, len(locations))
	for _, loc := range locations {
		items = append(items, models.Location{
			Name:        loc.Name,
			Point:       models.Point{X: loc.Point.X, Y: loc.Point.Y},
			ColdStorage: loc.ColdStorage,
		})
	}
	response.JSON(w, r, http.StatusOK, models.LocationListResponse{Items: items})
}

// PlanRoute handles POST /v1/routes:plan - cheapest visiting order.
func (h *RouteHandler) PlanRoute(w http.ResponseWriter, r *http.Request) {
	var input models.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation failed", errs)
		return
	}

	_, span := otel.Tracer(tracerName).Start(r.Context(), "planner.PlanRoute")
	span.SetAttributes(
		attribute.Int("waypoints", len(input.Waypoints)),
		attribute.Bool("fragile", input.Fragile),
		attribute.Bool("cold_storage", input.NeedsColdStorage),
	)
	plan, err := h.planner.PlanRoute(input.Waypoints, planner.Cargo{
		Fragile:          input.Fragile,
		NeedsColdStorage: input.NeedsColdStorage,
		ProductType:      planner.ProductType(input.ProductType),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()

	if err != nil {
		h.writePlanError(w, r, input.Waypoints, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.PlanResponse{
		Order:     plan.Order,
		Cost:      plan.Cost,
		FirstStop: plan.FirstStop(),
	})
}

func (h *RouteHandler) writePlanError(w http.ResponseWriter, r *http.Request, waypoints []string, err error) {
	var locErr *routing.Error
	switch {
	case errors.As(err, &locErr):
		field := "waypoints"
		if i := slices.Index(waypoints, locErr.Location); i >= 0 {
			field = "waypoints[" + strconv.Itoa(i) + "]"
		}
		response.BadRequest(w, r, "validation failed", []models.FieldError{{
			Field:   field,
			Message: "unknown location " + locErr.Location,
			Code:    "UNKNOWN_LOCATION",
		}})
	case errors.Is(err, planner.ErrDuplicateWaypoint):
		response.BadRequest(w, r, "validation failed", []models.FieldError{{
			Field:   "waypoints",
			Message: "must not contain duplicates",
			Code:    "DUPLICATE",
		}})
	case errors.Is(err, planner.ErrInvalidWaypointCount):
		response.BadRequest(w, r, "validation failed", []models.FieldError{{
			Field:   "waypoints",
			Message: "must contain 3 to 5 locations",
			Code:    "OUT_OF_RANGE",
		}})
	case errors.Is(err, planner.ErrInfeasible):
		response.Unprocessable(w, r, "no feasible route: cold storage is required but no waypoint provides it")
	default:
		h.logger.Error().Err(err).Strs("waypoints", waypoints).Msg("failed to plan route")
		response.InternalError(w, r, "failed to plan route")
	}
}
