package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/philly/folio/internal/adapters/api"
	"github.com/philly/folio/internal/posts/ports"
)

// readinessTimeout bounds the storage ping of the readiness probe
const readinessTimeout = 2 * time.Second

// HealthConfig describes the running build for the health probes
type HealthConfig struct {
	Version string
	// Durable is false for storage that loses its data on restart
	Durable bool
}

type HealthHandler struct {
	*BaseHandler
	config HealthConfig
	repo   ports.PostRepository
}

func NewHealthHandler(base *BaseHandler, config HealthConfig, repo ports.PostRepository) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		config:      config,
		repo:        repo,
	}
}

// GetLiveness implements the liveness probe endpoint
// This is a lightweight check with no external dependencies
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	response := api.HealthStatus{
		Status:    api.Healthy,
		Timestamp: time.Now(),
		Version:   &h.config.Version,
	}

	h.WriteJSONResponse(w, r, response, http.StatusOK)
}

// GetReadiness implements the readiness probe endpoint
// A failing storage ping is unhealthy; non-durable storage is reported degraded
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	status := api.Healthy
	httpStatus := http.StatusOK

	checks := &struct {
		Database *api.HealthStatusChecksDatabase `json:"database,omitempty"`
	}{}

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	dbStatus := api.Up
	if err := h.repo.Ping(ctx); err != nil {
		h.logger.Warn(r.Context(), "readiness check failed", "error", err)
		dbStatus = api.Down
		status = api.Unhealthy
		httpStatus = http.StatusServiceUnavailable
	} else if !h.config.Durable {
		status = api.Degraded
	}
	checks.Database = &dbStatus

	response := api.HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   &h.config.Version,
		Checks:    checks,
	}

	h.WriteJSONResponse(w, r, response, httpStatus)
}
