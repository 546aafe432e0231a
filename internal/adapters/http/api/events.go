// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/amiri/dayplan/internal/domain/model"
	"github.com/amiri/dayplan/pkg/metrics"
)

// IdempotencyKeyHeader carries an optional client token for create retries.
const IdempotencyKeyHeader = "Idempotency-Key"

// EventsHandler handles requests against the events collection.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events collection handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleEvents dispatches POST /events and GET /events.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleCreate handles POST /events. Validation happens here, at the
// boundary; nothing malformed reaches the store or the categorizer.
func (h *EventsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_event"

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordValidationFailure()
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		metrics.RecordValidationFailure()
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check: a retried create under a known key returns the
	// event the first attempt stored.
	key := r.Header.Get(IdempotencyKeyHeader)
	if key != "" {
		if id, ok := h.deps.LookupIdempotent(r.Context(), key); ok {
			event, err := h.deps.GetEvent(r.Context(), id)
			if err == nil {
				writeJSON(w, http.StatusOK, event)
				return
			}
			// Recorded event was deleted since; treat as a fresh create.
			h.deps.ForgetIdempotent(r.Context(), key)
		}
	}

	event, err := h.deps.CreateEvent(r.Context(), model.NewEvent{
		Title: req.Title,
		Date:  req.Date,
		Time:  req.Time,
		Notes: req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	if key != "" {
		h.deps.RecordIdempotent(r.Context(), key, event.ID)
	}

	writeJSON(w, http.StatusCreated, event)
}

// handleList handles GET /events. The response is always sorted ascending
// by date+time; category filtering stays on the client.
func (h *EventsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_events"

	events, err := h.deps.ListEvents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, events)
}
