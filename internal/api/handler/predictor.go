package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/trafficadvisor/trafficadvisor/internal/api/models"
	"github.com/trafficadvisor/trafficadvisor/internal/api/response"
	"github.com/trafficadvisor/trafficadvisor/internal/predict"
	"github.com/trafficadvisor/trafficadvisor/internal/traffic"
	"github.com/trafficadvisor/trafficadvisor/internal/validate"
)

// PredictorHandler handles model training and prediction endpoints.
type PredictorHandler struct {
	pred      *predict.Predictor
	locations []string
	modelPath string
	log       zerolog.Logger
}

// PredictorHandlerConfig holds configuration for the PredictorHandler.
type PredictorHandlerConfig struct {
	// Predictor is the trainable congestion model.
	Predictor *predict.Predictor

	// Locations is the location vocabulary for synthetic training data.
	Locations []string

	// ModelPath is where trained models are persisted. Empty disables
	// persistence.
	ModelPath string

	// Logger for training events.
	Logger zerolog.Logger
}

// NewPredictorHandler creates a new PredictorHandler.
func NewPredictorHandler(cfg PredictorHandlerConfig) *PredictorHandler {
	return &PredictorHandler{
		pred:      cfg.Predictor,
		locations: cfg.Locations,
		modelPath: cfg.ModelPath,
		log:       cfg.Logger.With().Str("component", "predictor_handler").Logger(),
	}
}

// Train handles POST /v1/predictor:train - fits the model on a synthetic
// dataset and persists the result.
func (h *PredictorHandler) Train(w http.ResponseWriter, r *http.Request) {
	var req models.TrainRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Routes <= 0 {
		req.Routes = 50
	}
	if req.Days <= 0 {
		req.Days = 30
	}

	gen := traffic.NewGenerator(traffic.GeneratorConfig{
		Locations: h.locations,
		Seed:      req.Seed,
	})
	records := gen.Dataset(req.Routes, req.Days)

	report, err := h.pred.Train(records)
	if err != nil {
		h.log.Error().Err(err).Msg("training failed")
		response.InternalError(w, r, "model training failed")
		return
	}

	if h.modelPath != "" {
		if err := h.pred.Save(h.modelPath); err != nil {
			h.log.Error().Err(err).Str("path", h.modelPath).Msg("model persistence failed")
		}
	}

	response.JSON(w, r, http.StatusOK, report)
}

// Predict handles POST /v1/predictor:predict - a learned congestion
// estimate for one route and time.
func (h *PredictorHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req models.PredictRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validate.Location(req.Source); err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "source", Message: err.Error(), Code: "INVALID"},
		})
		return
	}
	if err := validate.Location(req.Destination); err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "destination", Message: err.Error(), Code: "INVALID"},
		})
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

	source := validate.SanitizeLocation(req.Source)
	destination := validate.SanitizeLocation(req.Destination)

	pred, err := h.pred.PredictOne(source, destination, hour, req.DayOfWeek, req.DistanceKm)
	if err != nil {
		response.ServiceUnavailable(w, r, "model not trained")
		return
	}

	response.JSON(w, r, http.StatusOK, pred)
}
