// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	repository "github.com/morgan-franklin/swimmeet-api-testing/internal/adapters/repository"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/model"
)

// SwimmersHandler handles swimmer registry requests.
type SwimmersHandler struct {
	deps Dependencies
}

// NewSwimmersHandler creates a new swimmers handler.
func NewSwimmersHandler(deps Dependencies) *SwimmersHandler {
	return &SwimmersHandler{deps: deps}
}

// swimmerRequest mirrors the POST /api/swimmers body. Age is a pointer so
// a missing field can be told apart from a zero age.
type swimmerRequest struct {
	Name   string `json:"name"`
	Age    *int   `json:"age"`
	Gender string `json:"gender"`
	Team   string `json:"team"`
	Email  string `json:"email"`
}

func (r swimmerRequest) validate() error {
	switch {
	case r.Name == "":
		return errors.New("missing required field: name")
	case r.Age == nil:
		return errors.New("missing required field: age")
	case r.Gender == "":
		return errors.New("missing required field: gender")
	case r.Team == "":
		return errors.New("missing required field: team")
	}
	return nil
}

// HandleList handles GET /api/swimmers?team= requests.
func (h *SwimmersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	swimmers := h.deps.ListSwimmers(r.Context(), r.URL.Query().Get("team"))
	writeJSON(w, http.StatusOK, swimmers)
}

// HandleCreate handles POST /api/swimmers requests.
func (h *SwimmersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req swimmerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errNotJSON)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sw, err := h.deps.CreateSwimmer(r.Context(), repository.NewSwimmer{
		Name:   req.Name,
		Age:    *req.Age,
		Gender: req.Gender,
		Team:   req.Team,
		Email:  req.Email,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, sw)
}

// HandleGet handles GET /api/swimmers/{id} requests.
func (h *SwimmersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	sw, err := h.deps.GetSwimmer(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), notFoundMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, sw)
}

// HandleUpdate handles PUT /api/swimmers/{id} requests. Only fields
// present in the body are merged; an age change reclassifies the age
// group.
func (h *SwimmersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch model.SwimmerPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, errNotJSON)
		return
	}
	sw, err := h.deps.UpdateSwimmer(r.Context(), id, patch)
	if err != nil {
		writeError(w, statusFor(err), notFoundMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, sw)
}

// HandleDelete handles DELETE /api/swimmers/{id} requests.
func (h *SwimmersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.deps.DeleteSwimmer(r.Context(), id); err != nil {
		writeError(w, statusFor(err), notFoundMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Swimmer deleted"})
}

// HandlePersonalBests handles GET /api/swimmers/{id}/pbs requests. An
// unknown or raceless swimmer yields an empty mapping, not an error.
func (h *SwimmersHandler) HandlePersonalBests(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	pbs, err := h.deps.PersonalBests(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, pbs)
}

// notFoundMessage substitutes the client-facing body for 404s while
// leaving other failures (e.g. a snapshot write error) untouched.
func notFoundMessage(err error) error {
	if statusFor(err) == http.StatusNotFound {
		return errors.New("Swimmer not found")
	}
	return err
}

// pathID extracts the {id} route variable. The route pattern restricts it
// to digits, so a parse failure means a malformed request.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid id"))
		return 0, false
	}
	return id, true
}
