// filepath: internal/api/handlers/playback_handler.go
package handlers

import (
	"net/http"

	"voicejournal/internal/diagnostics"
)

// PlayEntry starts playback of an entry's recording.
func (h *Handlers) PlayEntry(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: id")
		return
	}
	if err := h.Workflow.PlayEntry(r.Context(), id); err != nil {
		h.respondWithClassifiedError(w, r, err, diagnostics.CategoryPlayback)
		return
	}
	respondWithJSON(w, http.StatusAccepted, h.Playback.Status())
}

func (h *Handlers) PausePlayback(w http.ResponseWriter, r *http.Request) {
	h.playbackControl(w, r, h.Playback.PausePlayback)
}

func (h *Handlers) ResumePlayback(w http.ResponseWriter, r *http.Request) {
	h.playbackControl(w, r, h.Playback.ResumePlayback)
}

func (h *Handlers) StopPlayback(w http.ResponseWriter, r *http.Request) {
	h.playbackControl(w, r, h.Playback.StopPlayback)
}

// GetAudioStatus reports the recording and playback states.
func (h *Handlers) GetAudioStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.Playback.Status())
}

func (h *Handlers) playbackControl(w http.ResponseWriter, r *http.Request, op func() error) {
	if err := op(); err != nil {
		h.respondWithClassifiedError(w, r, err, diagnostics.CategoryPlayback)
		return
	}
	respondWithJSON(w, http.StatusOK, h.Playback.Status())
}
