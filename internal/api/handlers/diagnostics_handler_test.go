// filepath: internal/api/handlers/diagnostics_handler_test.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"voicejournal/internal/diagnostics"
	"voicejournal/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDiagnostics(t *testing.T) {
	env := setupHandlers(t)
	env.h.Journal.Record(workflow.ErrAudioFileNotFound, diagnostics.CategoryPlayback, "play")
	env.h.Journal.Record(errors.New("boom"), "", "cleanup")

	t.Run("JSON", func(t *testing.T) {
		rr := httptest.NewRecorder()
		env.h.GetDiagnostics(rr, httptest.NewRequest("GET", "/api/diagnostics?limit=1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp DiagnosticsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Total)
		require.Len(t, resp.Records, 1)
		assert.Equal(t, "Unexpected Error", resp.Records[0].Title, "newest first")
		assert.Equal(t, diagnostics.SeverityMedium, resp.Records[0].Severity)
	})

	t.Run("Text report", func(t *testing.T) {
		rr := httptest.NewRecorder()
		env.h.GetDiagnostics(rr, httptest.NewRequest("GET", "/api/diagnostics?format=text", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Voice Journal Diagnostic Report")
		assert.Contains(t, rr.Body.String(), "Audio File Missing")
	})

	t.Run("Invalid limit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		env.h.GetDiagnostics(rr, httptest.NewRequest("GET", "/api/diagnostics?limit=x", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
