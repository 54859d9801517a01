// filepath: internal/api/handlers/diagnostics_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"voicejournal/internal/diagnostics"
)

const defaultDiagnosticsLimit = 20

// DiagnosticsResponse lists recent classified errors.
type DiagnosticsResponse struct {
	Total   int                  `json:"total"`
	Records []diagnostics.Record `json:"records"`
}

// GetDiagnostics returns the most recent journal records, or the plain-text
// report when format=text.
func (h *Handlers) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(h.Journal.Report()))
		return
	}

	limit := defaultDiagnosticsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter.")
			return
		}
		limit = n
	}

	records := h.Journal.Recent(limit)
	if records == nil {
		records = []diagnostics.Record{}
	}
	respondWithJSON(w, http.StatusOK, DiagnosticsResponse{Total: h.Journal.Len(), Records: records})
}
