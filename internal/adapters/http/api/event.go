// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// EventHandler handles requests against a single event.
type EventHandler struct {
	deps Dependencies
}

// NewEventHandler creates a new single-event handler.
func NewEventHandler(deps Dependencies) *EventHandler {
	return &EventHandler{deps: deps}
}

// HandleEvent dispatches PUT /events/{id} and DELETE /events/{id}.
func (h *EventHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/events/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.handleArchive(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// handleArchive handles PUT /events/{id} with body {"archived": true}.
// Archiving is one-way and idempotent; archived=false is rejected because
// there is no unarchive.
func (h *EventHandler) handleArchive(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.archive_event"

	var req archiveEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if !req.Archived {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("archived must be true")))
		return
	}

	event, err := h.deps.ArchiveEvent(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// handleDelete handles DELETE /events/{id}. Success is a bare 204.
func (h *EventHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.delete_event"

	if err := h.deps.DeleteEvent(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
