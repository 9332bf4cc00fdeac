package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/logisticsnet/logisticsnet/internal/api/models"
	"github.com/logisticsnet/logisticsnet/internal/api/response"
	"github.com/logisticsnet/logisticsnet/internal/carrier"
	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

// CarrierService ranks carriers and serves their reference details.
type CarrierService interface {
	Recommend(ctx context.Context, q carrier.Query) (*carrier.Recommendation, error)
	Carrier(ctx context.Context, name string) (refdata.Carrier, error)
	Carriers(ctx context.Context) []refdata.Carrier
	Routes(ctx context.Context) ([]refdata.RouteKey, error)
}

// CarrierHandler handles carrier ranking and lookup endpoints.
type CarrierHandler struct {
	service CarrierService
	logger  zerolog.Logger
}

// NewCarrierHandler creates a new CarrierHandler.
func NewCarrierHandler(service CarrierService, logger zerolog.Logger) *CarrierHandler {
	return &CarrierHandler{service: service, logger: logger}
}

// Recommend handles POST /v1/recommendations - rank carriers on a route.
func (h *CarrierHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var input models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	q, err := carrier.NewQuery(input.Origin, input.Destination, input.Priorities, input.Fragility)
	if err != nil {
		var verr *carrier.ValidationError
		if errors.As(err, &verr) {
			response.BadRequest(w, r, "validation failed", verr.Errors)
			return
		}
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	rec, err := h.service.Recommend(r.Context(), q)
	switch {
	case errors.Is(err, carrier.ErrNoRouteData):
		response.NotFound(w, r, fmt.Sprintf("No data available for the route %s to %s.", q.Origin, q.Destination))
		return
	case err != nil:
		h.logger.Error().Err(err).Str("route", q.Route()).Msg("failed to rank carriers")
		response.InternalError(w, r, "failed to rank carriers")
		return
	}

	resp := models.RecommendationResponse{
		Origin:      q.Origin,
		Destination: q.Destination,
		TopChoice:   toCarrierPick(rec.TopChoice),
		ValuePick:   toCarrierPick(rec.ValuePick),
	}
	if rec.BalancedOption != nil {
		balanced := toCarrierPick(*rec.BalancedOption)
		resp.BalancedOption = &balanced
	}
	response.JSON(w, r, http.StatusOK, resp)
}

// ListCarriers handles GET /v1/carriers - list every carrier.
func (h *CarrierHandler) ListCarriers(w http.ResponseWriter, r *http.Request) {
	carriers := h.service.Carriers(r.Context())
	items := make([]models.Carrier, 0, len(carriers))
	for _, c := range carriers {
		items = append(items, toCarrier(c))
	}
	response.JSON(w, r, http.StatusOK, models.CarrierListResponse{Items: items})
}

// GetCarrier handles GET /v1/carriers/{carrierName} - carrier details.
func (h *CarrierHandler) GetCarrier(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "carrierName")

	c, err := h.service.Carrier(r.Context(), name)
	switch {
	case errors.Is(err, refdata.ErrMissingReferenceData):
		response.NotFound(w, r, "Company details not found.")
		return
	case err != nil:
		h.logger.Error().Err(err).Str("carrier", name).Msg("failed to load carrier")
		response.InternalError(w, r, "failed to load carrier")
		return
	}
	response.JSON(w, r, http.StatusOK, toCarrier(c))
}

// ListRoutes handles GET /v1/routes - routes that have carrier data.
func (h *CarrierHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.service.Routes(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list routes")
		response.InternalError(w, r, "failed to list routes")
		return
	}

	items := make([]models.Route, 0, len(routes))
	for _, rk := range routes {
		items = append(items, models.Route{Origin: rk.Origin, Destination: rk.Destination})
	}
	response.JSON(w, r, http.StatusOK, models.RouteListResponse{Items: items})
}

func toCarrierPick(p carrier.Pick) models.CarrierPick {
	return models.CarrierPick{
		Name:          p.Name,
		Domain:        p.Domain,
		Hub:           p.Hub,
		BhopalAddress: p.BhopalAddress,
		CareNumber:    p.CareNumber,
	}
}

func toCarrier(c refdata.Carrier) models.Carrier {
	return models.Carrier{
		Name:          c.Name,
		Domain:        c.Domain,
		Hub:           c.Hub,
		BhopalAddress: c.BhopalAddress,
		CareNumber:    c.CareNumber,
	}
}
