// filepath: internal/api/handlers/responses.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"voicejournal/internal/audio"
	"voicejournal/internal/diagnostics"
	"voicejournal/internal/enrichment"
	"voicejournal/internal/services/auth"
	"voicejournal/internal/shared"
	"voicejournal/internal/workflow"
)

// ErrorResponse is a standard format for API error messages.
type ErrorResponse struct {
	Error    string               `json:"error"`
	Title    string               `json:"title,omitempty"`
	Severity string               `json:"severity,omitempty"`
	Actions  []diagnostics.Action `json:"actions,omitempty"`
}

// MessageResponse is a standard format for simple API messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondWithError sends a JSON error response.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithClassifiedError records err in the journal and answers with its
// classification and a status code derived from the error.
func (h *Handlers) respondWithClassifiedError(w http.ResponseWriter, r *http.Request, err error, category diagnostics.Category) {
	c := h.Journal.Record(err, category, r.Method+" "+r.URL.Path)
	respondWithJSON(w, statusFor(err), ErrorResponse{
		Error:    c.Message,
		Title:    c.Title,
		Severity: c.Severity.String(),
		Actions:  c.Actions,
	})
}

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func statusFor(err error) int {
	var apiErr *enrichment.APIError
	switch {
	case errors.Is(err, workflow.ErrNoRecordPermission):
		return http.StatusForbidden
	case errors.Is(err, workflow.ErrAudioSystemUnavailable),
		errors.Is(err, workflow.ErrEnrichmentNotConfigured),
		errors.Is(err, audio.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, shared.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrNoAudioFile):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrAudioFileNotFound),
		errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrEnrichmentInProgress),
		errors.Is(err, audio.ErrIllegalTransition):
		return http.StatusConflict
	case errors.As(err, &apiErr), errors.Is(err, enrichment.ErrNetwork):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// actor names the authenticated caller for audit events.
func actor(r *http.Request) string {
	return auth.UserFromContext(r.Context())
}

func (h *Handlers) audit(r *http.Request, action, resource string, details map[string]interface{}) {
	if h.Auditor == nil {
		return
	}
	h.Auditor.Log(r.Context(), action, actor(r), resource, details)
}
