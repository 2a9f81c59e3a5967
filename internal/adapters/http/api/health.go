// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// healthResponse reports liveness plus collection sizes.
type healthResponse struct {
	Status        string `json:"status"`
	SwimmersCount int    `json:"swimmers_count"`
	RacesCount    int    `json:"races_count"`
	EventsCount   int    `json:"events_count"`
}

// HandleHealth handles GET /api/health requests with collection counts.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	swimmers, races, events := h.deps.Counts(r.Context())
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		SwimmersCount: swimmers,
		RacesCount:    races,
		EventsCount:   events,
	})
}
