// Package handler provides HTTP handlers for the traffic advisory API.
package handler

import (
	"net/http"
	"time"

	"github.com/trafficadvisor/trafficadvisor/internal/api/models"
	"github.com/trafficadvisor/trafficadvisor/internal/api/response"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	trained   func() bool
}

// NewOpsHandler creates a new OpsHandler. trained reports model readiness
// and feeds the readiness payload.
func NewOpsHandler(version, buildTime string, trained func() bool) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		trained:   trained,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service
// stays OK without a trained model since the heuristic estimator covers
// every operation; the payload reports which congestion source is active.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	trained := h.trained != nil && h.trained()
	source := "heuristic"
	if trained {
		source = "model"
	}

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"model_trained":     trained,
			"congestion_source": source,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}
