// filepath: internal/api/router.go
// Package api wires the HTTP routes of the journal service.
package api

import (
	"voicejournal/internal/api/handlers"
	"voicejournal/internal/metrics"
	"voicejournal/internal/services/auth"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures the main router and its sub-routers.
func SetupRouter(h *handlers.Handlers, am *auth.Middleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(metrics.Middleware)

	// Public Endpoints
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")

	// Authenticated API Routes
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(am.AuthMiddleware)

	addSystemRoutes(apiRouter, h)
	addEntryRoutes(apiRouter, h)
	addAudioRoutes(apiRouter, h)

	return r
}

// addSystemRoutes configures health, integrity, maintenance and diagnostics.
func addSystemRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/health", h.GetSystemHealth).Methods("GET")
	r.HandleFunc("/integrity", h.GetIntegrity).Methods("GET")
	r.HandleFunc("/maintenance/cleanup", h.TriggerCleanup).Methods("POST")
	r.HandleFunc("/diagnostics", h.GetDiagnostics).Methods("GET")
}

// addEntryRoutes configures routes related to entry management.
func addEntryRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/entries", h.GetEntries).Methods("GET")
	r.HandleFunc("/entry", h.GetEntry).Methods("GET")
	r.HandleFunc("/entry", h.DeleteEntry).Methods("DELETE")
	r.HandleFunc("/entry/enrich", h.EnrichEntry).Methods("POST")
}

// addAudioRoutes configures recording and playback control.
func addAudioRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/recording/start", h.StartRecording).Methods("POST")
	r.HandleFunc("/recording/stop", h.StopRecording).Methods("POST")
	r.HandleFunc("/playback", h.PlayEntry).Methods("POST")
	r.HandleFunc("/playback/pause", h.PausePlayback).Methods("POST")
	r.HandleFunc("/playback/resume", h.ResumePlayback).Methods("POST")
	r.HandleFunc("/playback/stop", h.StopPlayback).Methods("POST")
	r.HandleFunc("/audio/status", h.GetAudioStatus).Methods("GET")
}
