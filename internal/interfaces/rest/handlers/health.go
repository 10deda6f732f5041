package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/DanielPopoola/claimpay/internal/api"
	"github.com/DanielPopoola/claimpay/internal/interfaces/rest"
)

const healthCheckTimeout = 2 * time.Second

// Health pings the database and, when configured, the idempotency cache
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  api.APIResponse
// @Failure      503  {object}  api.APIResponse
// @Router       /healthz [get]
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := api.HealthStatus{Status: "ok", Database: "up", Cache: "disabled"}
	code := http.StatusOK

	if err := h.deps.Database.Ping(ctx); err != nil {
		h.logger.Error("health check failed", "dependency", "database", "error", err)
		status.Status, status.Database = "degraded", "down"
		code = http.StatusServiceUnavailable
	}

	if h.deps.Cache != nil {
		status.Cache = "up"
		if err := h.deps.Cache.Ping(ctx); err != nil {
			h.logger.Error("health check failed", "dependency", "cache", "error", err)
			status.Status, status.Cache = "degraded", "down"
			code = http.StatusServiceUnavailable
		}
	}

	rest.WriteJSON(w, code, status)
}
