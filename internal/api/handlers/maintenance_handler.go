// filepath: internal/api/handlers/maintenance_handler.go
package handlers

import (
	"net/http"

	"voicejournal/internal/audit"
	"voicejournal/internal/diagnostics"
)

// GetIntegrity audits entries against the media directory.
func (h *Handlers) GetIntegrity(w http.ResponseWriter, r *http.Request) {
	report, err := h.Workflow.ValidateDataIntegrity(r.Context())
	if err != nil {
		h.respondWithClassifiedError(w, r, err, diagnostics.CategoryData)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// TriggerCleanup manually runs housekeeping: orphaned media files and unused tags.
func (h *Handlers) TriggerCleanup(w http.ResponseWriter, r *http.Request) {
	report, err := h.Housekeeping.Trigger()
	if err != nil {
		h.respondWithClassifiedError(w, r, err, diagnostics.CategoryStorage)
		return
	}
	h.audit(r, audit.ActionCleanup, "media", map[string]interface{}{
		"files_deleted": report.Cleanup.FilesDeleted,
		"bytes_freed":   report.Cleanup.BytesFreed,
		"tags_removed":  report.TagsRemoved,
	})
	respondWithJSON(w, http.StatusOK, report)
}
