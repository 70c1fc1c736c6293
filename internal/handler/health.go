package handler

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/NotionPet_Go/internal/logger"
)

const readinessTimeout = 2 * time.Second

// Component states reported by the health endpoints
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)

// ReadinessCheck probes one dependency the API cannot serve without
type ReadinessCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}

// HandleReadyz runs every check concurrently and reports each component. Any
// failing component makes the whole service unavailable.
// @Summary Readiness check
// @Description Returns OK when every dependency (database, ...) answers within two seconds
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		results := make([]error, len(checks))
		var g errgroup.Group
		for i, check := range checks {
			g.Go(func() error {
				results[i] = check.Probe(ctx)
				return nil
			})
		}
		_ = g.Wait()

		resp := HealthResponse{Status: HealthStatusOK, Components: make(map[string]string, len(checks))}
		for i, check := range checks {
			if results[i] != nil {
				logger.FromContext(ctx).Error("Readiness check failed", "component", check.Name, "error", results[i])
				resp.Components[check.Name] = HealthStatusUnavailable
				resp.Status = HealthStatusUnavailable
				continue
			}
			resp.Components[check.Name] = HealthStatusOK
		}

		status := http.StatusOK
		if resp.Status != HealthStatusOK {
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, resp)
	}
}
