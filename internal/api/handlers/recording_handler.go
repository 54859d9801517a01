// filepath: internal/api/handlers/recording_handler.go
package handlers

import (
	"net/http"

	"voicejournal/internal/audit"
	"voicejournal/internal/diagnostics"
)

// StartRecording begins capturing a new journal entry.
func (h *Handlers) StartRecording(w http.ResponseWriter, r *http.Request) {
	if err := h.Workflow.StartRecordingWorkflow(r.Context()); err != nil {
		h.respondWithClassifiedError(w, r, err, diagnostics.CategoryRecording)
		return
	}
	h.audit(r, audit.ActionRecordingStart, "recording", nil)
	respondWithJSON(w, http.StatusAccepted, MessageResponse{Message: "Recording started."})
}

// StopRecording stops capture and persists the entry.
func (h *Handlers) StopRecording(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Workflow.StopRecordingWorkflow(r.Context())
	if err != nil {
		h.respondWithClassifiedError(w, r, err, diagnostics.CategoryRecording)
		return
	}
	h.audit(r, audit.ActionRecordingStop, "entry:"+entry.ID, map[string]interface{}{
		"duration_sec": entry.DurationSec,
	})
	respondWithJSON(w, http.StatusCreated, entry)
}
