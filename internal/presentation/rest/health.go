package rest

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const serviceName = "fraud-service"

// Check probes one dependency for readiness.
type Check func(ctx context.Context) error

// HealthHandler provides HTTP health check endpoints for the fraud service.
type HealthHandler struct {
	logger    *slog.Logger
	startTime time.Time
	checks    map[string]Check
	timeout   time.Duration
}

// NewHealthHandler creates a new health check handler. Readiness runs every
// check in checks.
func NewHealthHandler(logger *slog.Logger, checks map[string]Check) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		startTime: time.Now(),
		checks:    checks,
		timeout:   2 * time.Second,
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
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: serviceName,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Readyz reports 503 when any dependency check fails.
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := ReadinessResponse{Status: "ready", Service: serviceName, Checks: make(map[string]string, len(names))}
	code := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.Warn("readiness check failed", "check", name, "error", err)
			resp.Checks[name] = err.Error()
			resp.Status = "not_ready"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	c.JSON(code, resp)
}
