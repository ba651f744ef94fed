package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/churnwatch/risk-service/internal/domain/port"
)

// HealthHandler provides HTTP health check endpoints for the risk service.
type HealthHandler struct {
	provider  port.ArtifactProvider
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(provider port.ArtifactProvider, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		provider:  provider,
		logger:    logger,
		startTime: time.Now(),
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	ModelVersion string            `json:"model_version"`
	Checks       map[string]string `json:"checks"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "healthy",
		Service: "risk-service",
		Uptime:  time.Since(h.startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Readyz handles readiness probe requests. The service is ready only when a
// model artifact is loaded and scorable.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"model": "ok"}
	statusText := "ready"
	code := http.StatusOK
	version := ""

	if artifact := h.provider.Current(); artifact != nil {
		version = artifact.Version()
	} else {
		checks["model"] = "no artifact loaded"
		statusText = "not ready"
		code = http.StatusServiceUnavailable
	}

	resp := ReadinessResponse{
		Status:       statusText,
		Service:      "risk-service",
		ModelVersion: version,
		Checks:       checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
