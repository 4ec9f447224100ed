package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trafficadvisor/trafficadvisor/internal/api/models"
	"github.com/trafficadvisor/trafficadvisor/internal/api/response"
	"github.com/trafficadvisor/trafficadvisor/internal/route"
	"github.com/trafficadvisor/trafficadvisor/internal/validate"
)

// AdvisoryHandler handles route planning and evaluation endpoints.
type AdvisoryHandler struct {
	planner *route.Planner
	index   *route.Index
	pred    route.Predictor
}

// NewAdvisoryHandler creates a new AdvisoryHandler.
func NewAdvisoryHandler(planner *route.Planner, index *route.Index, pred route.Predictor) *AdvisoryHandler {
	return &AdvisoryHandler{
		planner: planner,
		index:   index,
		pred:    pred,
	}
}

// ListLocations handles GET /v1/locations - the known map locations.
func (h *AdvisoryHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.LocationsResponse{
		Locations: h.index.Locations(),
	})
}

// Alternatives handles GET /v1/routes/alternatives - candidate routes
// between two locations.
func (h *AdvisoryHandler) Alternatives(w http.ResponseWriter, r *http.Request) {
	source, destination, ok := h.endpoints(w, r,
		r.URL.Query().Get("source"), r.URL.Query().Get("destination"))
	if !ok {
		return
	}

	routes, err := h.planner.Alternatives(source, destination)
	if err != nil {
		if errors.Is(err, route.ErrSameLocation) {
			response.BadRequest(w, r, "source and destination must differ", nil)
			return
		}
		response.InternalError(w, r, "route enumeration failed")
		return
	}

	withGeometry := make([]models.RouteGeometry, len(routes))
	for i, rt := range routes {
		withGeometry[i] = models.RouteGeometry{
			Route:    rt,
			Geometry: h.index.Geometry(rt),
			Preview:  h.index.Preview(rt),
		}
	}

	response.JSON(w, r, http.StatusOK, models.AlternativesResponse{
		Source:      source,
		Destination: destination,
		Routes:      withGeometry,
	})
}

// Optimize handles POST /v1/routes:optimize - the route and departure-time
// sweep.
func (h *AdvisoryHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req models.OptimizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	source, destination, ok := h.endpoints(w, r, req.Source, req.Destination)
	if !ok {
		return
	}
	if err := validate.DayOfWeek(req.DayOfWeek); err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "day_of_week", Message: err.Error(), Code: "OUT_OF_RANGE"},
		})
		return
	}

	preferredHour := -1
	if req.PreferredTime != "" {
		hour, err := validate.ParseHour(req.PreferredTime)
		if err != nil {
			response.BadRequest(w, r, err.Error(), []models.FieldError{
				{Field: "preferred_time", Message: err.Error(), Code: "INVALID_FORMAT"},
			})
			return
		}
		preferredHour = hour
	}

	result, err := h.planner.Optimize(source, destination, preferredHour, req.DayOfWeek, h.pred)
	if err != nil {
		if errors.Is(err, route.ErrSameLocation) {
			response.BadRequest(w, r, "source and destination must differ", nil)
			return
		}
		response.InternalError(w, r, "route optimization failed")
		return
	}

	response.JSON(w, r, http.StatusOK, models.OptimizeResponse{
		Optimization: result,
		Summary:      route.Summary(result),
	})
}

// Evaluate handles POST /v1/routes:evaluate - a single route scored at a
// specific time.
func (h *AdvisoryHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	source, destination, ok := h.endpoints(w, r, req.Source, req.Destination)
	if !ok {
		return
	}
	hour, err := validate.ParseHour(req.Time)
	if err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "time", Message: err.Error(), Code: "INVALID_FORMAT"},
		})
		return
	}
	if err := validate.DayOfWeek(req.DayOfWeek); err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "day_of_week", Message: err.Error(), Code: "OUT_OF_RANGE"},
		})
		return
	}

	distance := req.DistanceKm
	if distance <= 0 {
		distance = h.index.DistanceKm(source, destination)
	}
	factor := req.RouteFactor
	if factor <= 0 {
		factor = 1.0
	}

	eval := h.planner.Evaluate(route.Route{
		Kind:        route.KindDirect,
		Description: "Direct route from " + source + " to " + destination,
		Waypoints:   []string{source, destination},
		DistanceKm:  distance,
		Factor:      factor,
	}, hour, req.DayOfWeek, h.pred)

	response.JSON(w, r, http.StatusOK, eval)
}

// endpoints validates and normalizes a source and destination pair.
func (h *AdvisoryHandler) endpoints(w http.ResponseWriter, r *http.Request, source, destination string) (string, string, bool) {
	if err := validate.Location(source); err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "source", Message: err.Error(), Code: "INVALID"},
		})
		return "", "", false
	}
	if err := validate.Location(destination); err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "destination", Message: err.Error(), Code: "INVALID"},
		})
		return "", "", false
	}
	return validate.SanitizeLocation(source), validate.SanitizeLocation(destination), true
}

// decodeJSON decodes a request body and writes a validation problem on
// failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, r, "invalid JSON request body", nil)
		return false
	}
	return true
}
