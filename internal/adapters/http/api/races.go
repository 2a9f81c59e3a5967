// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	repository "github.com/morgan-franklin/swimmeet-api-testing/internal/adapters/repository"
)

// RacesHandler handles race ledger requests.
type RacesHandler struct {
	deps Dependencies
}

// NewRacesHandler creates a new races handler.
func NewRacesHandler(deps Dependencies) *RacesHandler {
	return &RacesHandler{deps: deps}
}

// raceRequest mirrors the POST /api/races body. Pointer fields distinguish
// missing ids from zero values.
type raceRequest struct {
	SwimmerID *int   `json:"swimmer_id"`
	Event     string `json:"event"`
	Time      string `json:"time"`
	MeetID    *int   `json:"meet_id"`
	MeetName  string `json:"meet_name"`
	Lane      int    `json:"lane"`
	Heat      int    `json:"heat"`
	Date      string `json:"date"`
}

func (r raceRequest) validate() error {
	switch {
	case r.SwimmerID == nil:
		return errors.New("missing required field: swimmer_id")
	case r.Event == "":
		return errors.New("missing required field: event")
	case r.Time == "":
		return errors.New("missing required field: time")
	case r.MeetID == nil:
		return errors.New("missing required field: meet_id")
	}
	return nil
}

// HandleList handles GET /api/races?event=&meet_id=&swimmer_id= requests.
// Filters are conjunctive; a non-numeric id filter is a bad request.
func (h *RacesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.RaceFilter{Event: q.Get("event")}

	if v := q.Get("meet_id"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("meet_id must be an integer"))
			return
		}
		f.MeetID = n
	}
	if v := q.Get("swimmer_id"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("swimmer_id must be an integer"))
			return
		}
		f.SwimmerID = n
	}

	writeJSON(w, http.StatusOK, h.deps.ListRaces(r.Context(), f))
}

// HandleSubmit handles POST /api/races requests. The response carries the
// stored record including the isPB flag decided at append time.
func (h *RacesHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req raceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errNotJSON)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	race, err := h.deps.SubmitRace(r.Context(), repository.NewRace{
		SwimmerID: *req.SwimmerID,
		Event:     req.Event,
		Time:      req.Time,
		MeetID:    *req.MeetID,
		MeetName:  req.MeetName,
		Lane:      req.Lane,
		Heat:      req.Heat,
		Date:      req.Date,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, race)
}
