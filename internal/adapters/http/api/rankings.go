// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// RankingsHandler handles leaderboard requests.
type RankingsHandler struct {
	deps Dependencies
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps Dependencies) *RankingsHandler {
	return &RankingsHandler{deps: deps}
}

// HandleGet handles GET /api/rankings?event=&gender=&ageGroup= requests.
// The event parameter is required; gender and ageGroup narrow the result.
func (h *RankingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := h.deps.Rankings(r.Context(), q.Get("event"), q.Get("gender"), q.Get("ageGroup"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
