package handler

import (
	"fmt"
	"net/http"

	"github.com/trafficadvisor/trafficadvisor/internal/api/models"
	"github.com/trafficadvisor/trafficadvisor/internal/api/response"
	"github.com/trafficadvisor/trafficadvisor/internal/sustainability"
	"github.com/trafficadvisor/trafficadvisor/internal/validate"
)

// SustainabilityHandler handles transport mode comparison endpoints.
type SustainabilityHandler struct{}

// NewSustainabilityHandler creates a new SustainabilityHandler.
func NewSustainabilityHandler() *SustainabilityHandler {
	return &SustainabilityHandler{}
}

// Compare handles POST /v1/sustainability/compare - per-mode footprint of
// a trip, optionally adjusted for congestion.
func (h *SustainabilityHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.DistanceKm(req.DistanceKm); err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "distance_km", Message: err.Error(), Code: "OUT_OF_RANGE"},
		})
		return
	}

	resp := models.CompareResponse{
		DistanceKm:      req.DistanceKm,
		Impacts:         sustainability.CompareModes(req.DistanceKm),
		Recommendations: sustainability.Recommendations(req.DistanceKm),
	}

	if req.Congestion != nil {
		if err := validate.CongestionScore(*req.Congestion); err != nil {
			response.BadRequest(w, r, err.Error(), []models.FieldError{
				{Field: "congestion_score", Message: err.Error(), Code: "OUT_OF_RANGE"},
			})
			return
		}
		adjusted := make([]sustainability.AdjustedImpact, len(resp.Impacts))
		for i, impact := range resp.Impacts {
			adjusted[i] = sustainability.AdjustForCongestion(impact, *req.Congestion)
		}
		resp.Adjusted = adjusted
	}

	response.JSON(w, r, http.StatusOK, resp)
}

// Annual handles POST /v1/sustainability/annual - the yearly projection of
// a daily commute, summed over its legs.
func (h *SustainabilityHandler) Annual(w http.ResponseWriter, r *http.Request) {
	var req models.AnnualRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	legs := req.Legs
	if len(legs) == 0 {
		legs = []models.AnnualLeg{{DistanceKm: req.DistanceKm, Mode: req.Mode}}
	}

	daily := make([]sustainability.Impact, len(legs))
	for i, leg := range legs {
		if err := validate.DistanceKm(leg.DistanceKm); err != nil {
			response.BadRequest(w, r, err.Error(), []models.FieldError{
				{Field: fmt.Sprintf("legs[%d].distance_km", i), Message: err.Error(), Code: "OUT_OF_RANGE"},
			})
			return
		}
		if leg.Mode != "" && !sustainability.ValidMode(leg.Mode) {
			response.BadRequest(w, r, "unknown transport mode", []models.FieldError{
				{Field: fmt.Sprintf("legs[%d].mode", i), Message: "unknown transport mode", Code: "INVALID"},
			})
			return
		}

		mode := leg.Mode
		if mode == "" {
			mode = sustainability.ModeCarGasoline
		}
		daily[i] = sustainability.ImpactFor(leg.DistanceKm, mode)
	}

	response.JSON(w, r, http.StatusOK, sustainability.Annualize(daily, req.Days))
}
