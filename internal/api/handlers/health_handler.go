// filepath: internal/api/handlers/health_handler.go
package handlers

import (
	"fmt"
	"net/http"
)

// HealthCheck is a simple public endpoint to confirm the server is running.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// GetSystemHealth runs the subsystem health check. Unhealthy systems answer 503
// with the same report body.
func (h *Handlers) GetSystemHealth(w http.ResponseWriter, r *http.Request) {
	report := h.Workflow.PerformSystemHealthCheck(r.Context())
	code := http.StatusOK
	if !report.IsHealthy() {
		code = http.StatusServiceUnavailable
	}
	respondWithJSON(w, code, report)
}
