// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	repository "github.com/morgan-franklin/swimmeet-api-testing/internal/adapters/repository"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/model"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/racetime"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/ranking"
	"github.com/morgan-franklin/swimmeet-api-testing/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	ListSwimmers(ctx context.Context, team string) []model.Swimmer
	CreateSwimmer(ctx context.Context, in repository.NewSwimmer) (model.Swimmer, error)
	GetSwimmer(ctx context.Context, id int) (model.Swimmer, error)
	UpdateSwimmer(ctx context.Context, id int, patch model.SwimmerPatch) (model.Swimmer, error)
	DeleteSwimmer(ctx context.Context, id int) error

	ListRaces(ctx context.Context, f repository.RaceFilter) []model.RaceResult
	SubmitRace(ctx context.Context, in repository.NewRace) (model.RaceResult, error)

	Rankings(ctx context.Context, event, gender, ageGroup string) ([]model.RankingEntry, error)
	PersonalBests(ctx context.Context, swimmerID int) (map[string]model.BestTime, error)

	Events(ctx context.Context) []model.Event
	Counts(ctx context.Context) (swimmers, races, events int)
}

// Server wires HTTP routes for the business API.
type Server struct {
	swimmersHandler *SwimmersHandler
	racesHandler    *RacesHandler
	rankingsHandler *RankingsHandler
	eventsHandler   *EventsHandler
	healthHandler   *HealthHandler
	corsOrigin      string
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithCORSOrigin sets the Access-Control-Allow-Origin value.
func WithCORSOrigin(origin string) ServerOption {
	return func(s *Server) {
		if origin != "" {
			s.corsOrigin = origin
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	s := &Server{
		swimmersHandler: NewSwimmersHandler(deps),
		racesHandler:    NewRacesHandler(deps),
		rankingsHandler: NewRankingsHandler(deps),
		eventsHandler:   NewEventsHandler(deps),
		healthHandler:   NewHealthHandler(deps),
		corsOrigin:      "*",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(ctx context.Context, r *mux.Router) {
	r.Use(RequestIDMiddleware)
	r.Use(CORSMiddleware(s.corsOrigin))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/swimmers", MetricsMiddleware(s.swimmersHandler.HandleList, "swimmers")).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/swimmers", MetricsMiddleware(s.swimmersHandler.HandleCreate, "swimmers")).Methods(http.MethodPost)
	api.HandleFunc("/swimmers/{id:[0-9]+}", MetricsMiddleware(s.swimmersHandler.HandleGet, "swimmer")).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/swimmers/{id:[0-9]+}", MetricsMiddleware(s.swimmersHandler.HandleUpdate, "swimmer")).Methods(http.MethodPut)
	api.HandleFunc("/swimmers/{id:[0-9]+}", MetricsMiddleware(s.swimmersHandler.HandleDelete, "swimmer")).Methods(http.MethodDelete)
	api.HandleFunc("/swimmers/{id:[0-9]+}/pbs", MetricsMiddleware(s.swimmersHandler.HandlePersonalBests, "pbs")).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/races", MetricsMiddleware(s.racesHandler.HandleList, "races")).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/races", MetricsMiddleware(s.racesHandler.HandleSubmit, "races")).Methods(http.MethodPost)
	api.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGet, "rankings")).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleList, "events")).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health")).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// errorResponse is the body shape for every error status.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse carries informational bodies, e.g. delete confirmations.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps domain error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrMissingField),
		errors.Is(err, ranking.ErrMissingEvent),
		errors.Is(err, racetime.ErrFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
