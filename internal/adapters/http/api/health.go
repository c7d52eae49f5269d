// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/emberwatch/emberwatch/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service identity reported by the health endpoint.
const (
	serviceName    = "emberwatch"
	serviceVersion = "1.0.0"
)

// healthResponse mirrors the JSON schema for GET /health.
type healthResponse struct {
	Status          string  `json:"status"`
	Service         string  `json:"service"`
	Version         string  `json:"version"`
	OpenAIAvailable bool    `json:"openai_available"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleHealth handles GET /health requests with a JSON status payload.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "healthy",
		Service:         serviceName,
		Version:         serviceVersion,
		OpenAIAvailable: h.deps.OpenAIAvailable(),
		UptimeSeconds:   float64(h.deps.Uptime()) / float64(time.Second),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleMetrics handles GET /healthz requests, serving Prometheus metrics
// from the custom registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
