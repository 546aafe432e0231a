// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/amiri/dayplan/internal/adapters/repository"
	"github.com/amiri/dayplan/internal/domain/model"
	"github.com/amiri/dayplan/internal/domain/types"
)

// Canonical date and time formats. These are the exact shapes the store's
// sort order assumes, so the boundary enforces them before anything reaches
// the store.
var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CreateEvent(ctx context.Context, in model.NewEvent) (types.Event, error)
	ListEvents(ctx context.Context) ([]types.Event, error)
	GetEvent(ctx context.Context, id string) (types.Event, error)
	ArchiveEvent(ctx context.Context, id string) (types.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	// Idempotent-create bookkeeping keyed by the Idempotency-Key header.
	LookupIdempotent(ctx context.Context, key string) (string, bool)
	RecordIdempotent(ctx context.Context, key, eventID string)
	ForgetIdempotent(ctx context.Context, key string)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	eventsHandler    *EventsHandler
	eventHandler     *EventHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		eventsHandler:    NewEventsHandler(deps),
		eventHandler:     NewEventHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", CORSMiddleware(MetricsMiddleware(s.eventsHandler.HandleEvents, "events")))
	mux.HandleFunc("/events/", CORSMiddleware(MetricsMiddleware(s.eventHandler.HandleEvent, "event")))
}

// createEventRequest mirrors the JSON body of POST /events.
type createEventRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

func (r createEventRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(r.Date) == "":
		return errors.New("missing date")
	case strings.TrimSpace(r.Time) == "":
		return errors.New("missing time")
	}
	if !datePattern.MatchString(r.Date) {
		return errors.New("invalid date; must be YYYY-MM-DD")
	}
	if !timePattern.MatchString(r.Time) {
		return errors.New("invalid time; must be HH:MM")
	}
	return nil
}

// archiveEventRequest mirrors the JSON body of PUT /events/{id}. Only
// archived=true is meaningful; there is no unarchive.
type archiveEventRequest struct {
	Archived bool `json:"archived"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
