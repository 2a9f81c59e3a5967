// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// EventsHandler serves the static event catalogue.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleList handles GET /api/events requests.
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Events(r.Context()))
}
