// filepath: internal/api/handlers/entry_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"voicejournal/internal/audit"
	"voicejournal/internal/diagnostics"
	"voicejournal/internal/models"
)

var entryQueryParams = []string{"q", "category", "tag", "since", "until", "order", "limit", "offset"}

// parseEntryQuery reads the optional listing filters. ok is false when none were given.
func parseEntryQuery(values url.Values) (q models.EntryQuery, ok bool, err error) {
	for _, p := range entryQueryParams {
		if values.Get(p) != "" {
			ok = true
			break
		}
	}
	if !ok {
		return q, false, nil
	}

	q.Text = values.Get("q")
	q.CategoryID = values.Get("category")
	q.Tag = values.Get("tag")
	q.Order = values.Get("order")
	if v := values.Get("since"); v != "" {
		if q.Since, err = time.Parse(time.RFC3339, v); err != nil {
			return q, true, fmt.Errorf("invalid 'since' parameter, expected RFC3339")
		}
	}
	if v := values.Get("until"); v != "" {
		if q.Until, err = time.Parse(time.RFC3339, v); err != nil {
			return q, true, fmt.Errorf("invalid 'until' parameter, expected RFC3339")
		}
	}
	if v := values.Get("limit"); v != "" {
		if q.Limit, err = strconv.Atoi(v); err != nil {
			return q, true, fmt.Errorf("invalid 'limit' parameter")
		}
	}
	if v := values.Get("offset"); v != "" {
		if q.Offset, err = strconv.Atoi(v); err != nil {
			return q, true, fmt.Errorf("invalid 'offset' parameter")
		}
	}
	return q, true, nil
}

// GetEntries lists entries, newest first. Query parameters q, category, tag,
// since, until, order, limit and offset narrow the listing.
func (h *Handlers) GetEntries(w http.ResponseWriter, r *http.Request) {
	q, filtered, err := parseEntryQuery(r.URL.Query())
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var entries []models.Entry
	if filtered {
		entries, err = h.Entries.SearchEntries(r.Context(), q)
	} else {
		entries, err = h.Entries.FetchAll(r.Context())
	}
	if err != nil {
		h.respondWithClassifiedError(w, r, err, diagnostics.CategoryData)
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// GetEntry returns a single entry by id.
func (h *Handlers) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: id")
		return
	}
	entry, err := h.Entries.GetEntry(r.Context(), id)
	if err != nil {
		h.respondWithClassifiedError(w, r, err, diagnostics.CategoryData)
		return
	}
	respondWithJSON(w, http.StatusOK, entry)
}

// DeleteEntry removes an entry and its media file.
func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: id")
		return
	}
	if err := h.Workflow.DeleteEntry(r.Context(), id); err != nil {
		h.respondWithClassifiedError(w, r, err, diagnostics.CategoryData)
		return
	}
	h.audit(r, audit.ActionEntryDelete, "entry:"+id, nil)
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Entry deleted."})
}

// EnrichEntry transcribes and summarizes an entry synchronously.
func (h *Handlers) EnrichEntry(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: id")
		return
	}
	if err := h.Workflow.EnrichEntry(r.Context(), id); err != nil {
		h.respondWithClassifiedError(w, r, err, diagnostics.CategoryNetwork)
		return
	}
	h.audit(r, audit.ActionEntryEnrich, "entry:"+id, nil)

	entry, err := h.Entries.GetEntry(r.Context(), id)
	if err != nil {
		h.respondWithClassifiedError(w, r, err, diagnostics.CategoryData)
		return
	}
	respondWithJSON(w, http.StatusOK, entry)
}
