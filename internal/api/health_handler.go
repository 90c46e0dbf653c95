package api

import (
	"context"
	"net/http"
	"time"
)

// HealthCheck reports service liveness and database reachability.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"components": map[string]string{
			"database": "healthy",
		},
	}
	status := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			health["status"] = "degraded"
			health["components"].(map[string]string)["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	respondJSON(w, status, health)
}
