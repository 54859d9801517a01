// filepath: internal/api/handlers/entry_handler_test.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voicejournal/internal/audit"
	"voicejournal/internal/models"
	"voicejournal/internal/shared"
	"voicejournal/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetEntries(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := setupHandlers(t)
		env.entries.On("FetchAll", mock.Anything).Return([]models.Entry{
			{ID: "b", Title: "Voice Entry"},
			{ID: "a", Title: "Voice Entry"},
		}, nil).Once()

		rr := httptest.NewRecorder()
		env.h.GetEntries(rr, httptest.NewRequest("GET", "/api/entries", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var entries []models.Entry
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "b", entries[0].ID)
	})

	t.Run("Empty list is an array", func(t *testing.T) {
		env := setupHandlers(t)
		env.entries.On("FetchAll", mock.Anything).Return(nil, nil).Once()

		rr := httptest.NewRecorder()
		env.h.GetEntries(rr, httptest.NewRequest("GET", "/api/entries", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("Store failure", func(t *testing.T) {
		env := setupHandlers(t)
		env.entries.On("FetchAll", mock.Anything).Return(nil, errors.New("disk I/O error")).Once()

		rr := httptest.NewRecorder()
		env.h.GetEntries(rr, httptest.NewRequest("GET", "/api/entries", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		resp := decodeError(t, rr)
		assert.Equal(t, "Unexpected Error", resp.Title)
		assert.Equal(t, 1, env.h.Journal.Len())
	})
}

func TestGetEntries_Filtered(t *testing.T) {
	t.Run("Filters are passed to search", func(t *testing.T) {
		env := setupHandlers(t)
		since := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
		want := models.EntryQuery{Text: "dog", Tag: "pets", Since: since, Order: "asc", Limit: 5, Offset: 10}
		env.entries.On("SearchEntries", mock.Anything, want).Return([]models.Entry{{ID: "a"}}, nil).Once()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/entries?q=dog&tag=pets&since=2026-01-02T00:00:00Z&order=asc&limit=5&offset=10", nil)
		env.h.GetEntries(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		env.entries.AssertNotCalled(t, "FetchAll", mock.Anything)
		env.entries.AssertExpectations(t)
	})

	t.Run("Malformed parameter", func(t *testing.T) {
		env := setupHandlers(t)

		rr := httptest.NewRecorder()
		env.h.GetEntries(rr, httptest.NewRequest("GET", "/api/entries?since=yesterday", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = httptest.NewRecorder()
		env.h.GetEntries(rr, httptest.NewRequest("GET", "/api/entries?limit=many", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Rejected filter", func(t *testing.T) {
		env := setupHandlers(t)
		env.entries.On("SearchEntries", mock.Anything, models.EntryQuery{Order: "sideways"}).
			Return(nil, fmt.Errorf("%w: invalid order: sideways", shared.ErrInvalidFilter)).Once()

		rr := httptest.NewRecorder()
		env.h.GetEntries(rr, httptest.NewRequest("GET", "/api/entries?order=sideways", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid Filter", decodeError(t, rr).Title)
	})
}

func TestGetEntry(t *testing.T) {
	env := setupHandlers(t)
	env.entries.On("GetEntry", mock.Anything, "e1").Return(&models.Entry{ID: "e1", Transcript: "hello"}, nil).Once()
	env.entries.On("GetEntry", mock.Anything, "missing").Return(nil, shared.ErrNotFound).Once()

	rr := httptest.NewRecorder()
	env.h.GetEntry(rr, httptest.NewRequest("GET", "/api/entry?id=e1", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	var entry models.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entry))
	assert.Equal(t, "hello", entry.Transcript)

	rr = httptest.NewRecorder()
	env.h.GetEntry(rr, httptest.NewRequest("GET", "/api/entry?id=missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Entry Not Found", decodeError(t, rr).Title)

	rr = httptest.NewRecorder()
	env.h.GetEntry(rr, httptest.NewRequest("GET", "/api/entry", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteEntry(t *testing.T) {
	t.Run("Success is audited", func(t *testing.T) {
		env := setupHandlers(t)
		env.wf.On("DeleteEntry", mock.Anything, "e1").Return(nil).Once()
		env.auditor.On("Log", mock.Anything, audit.ActionEntryDelete, "anonymous", "entry:e1", mock.Anything).Once()

		rr := httptest.NewRecorder()
		env.h.DeleteEntry(rr, httptest.NewRequest("DELETE", "/api/entry?id=e1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		env.wf.AssertExpectations(t)
		env.auditor.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		env := setupHandlers(t)
		env.wf.On("DeleteEntry", mock.Anything, "nope").Return(shared.ErrNotFound).Once()

		rr := httptest.NewRecorder()
		env.h.DeleteEntry(rr, httptest.NewRequest("DELETE", "/api/entry?id=nope", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		env.auditor.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing id", func(t *testing.T) {
		env := setupHandlers(t)
		rr := httptest.NewRecorder()
		env.h.DeleteEntry(rr, httptest.NewRequest("DELETE", "/api/entry", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		env.wf.AssertNotCalled(t, "DeleteEntry", mock.Anything, mock.Anything)
	})
}

func TestEnrichEntry(t *testing.T) {
	t.Run("Success returns the updated entry", func(t *testing.T) {
		env := setupHandlers(t)
		env.wf.On("EnrichEntry", mock.Anything, "e1").Return(nil).Once()
		env.auditor.On("Log", mock.Anything, audit.ActionEntryEnrich, "anonymous", "entry:e1", mock.Anything).Once()
		env.entries.On("GetEntry", mock.Anything, "e1").Return(&models.Entry{ID: "e1", Summary: "short"}, nil).Once()

		rr := httptest.NewRecorder()
		env.h.EnrichEntry(rr, httptest.NewRequest("POST", "/api/entry/enrich?id=e1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"summary":"short"`)
	})

	tests := []struct {
		name   string
		err    error
		status int
		title  string
	}{
		{"Already running", workflow.ErrEnrichmentInProgress, http.StatusConflict, "Transcription In Progress"},
		{"Not configured", workflow.ErrEnrichmentNotConfigured, http.StatusServiceUnavailable, "Transcription Not Configured"},
		{"No audio", workflow.ErrNoAudioFile, http.StatusUnprocessableEntity, "No Audio File"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupHandlers(t)
			env.wf.On("EnrichEntry", mock.Anything, "e1").Return(tt.err).Once()

			rr := httptest.NewRecorder()
			env.h.EnrichEntry(rr, httptest.NewRequest("POST", "/api/entry/enrich?id=e1", nil))

			assert.Equal(t, tt.status, rr.Code)
			resp := decodeError(t, rr)
			assert.Equal(t, tt.title, resp.Title)
			assert.NotEmpty(t, resp.Actions)
		})
	}
}
