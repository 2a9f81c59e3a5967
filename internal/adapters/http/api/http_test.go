package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/morgan-franklin/swimmeet-api-testing/internal/adapters/http/api"
	repository "github.com/morgan-franklin/swimmeet-api-testing/internal/adapters/repository"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/model"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/racetime"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/ranking"
)

// stubDeps is a canned-response implementation of the handler dependencies.
type stubDeps struct {
	swimmers   []model.Swimmer
	races      []model.RaceResult
	events     []model.Event
	rankings   []model.RankingEntry
	pbs        map[string]model.BestTime
	submitErr  error
	lastFilter repository.RaceFilter
}

func (s *stubDeps) ListSwimmers(ctx context.Context, team string) []model.Swimmer {
	if team == "" {
		return s.swimmers
	}
	var out []model.Swimmer
	for _, sw := range s.swimmers {
		if strings.EqualFold(sw.Team, team) {
			out = append(out, sw)
		}
	}
	return out
}

func (s *stubDeps) CreateSwimmer(ctx context.Context, in repository.NewSwimmer) (model.Swimmer, error) {
	sw := model.Swimmer{ID: len(s.swimmers) + 1, Name: in.Name, Age: in.Age, Gender: in.Gender, Team: in.Team, AgeGroup: "25-29", Email: in.Email}
	s.swimmers = append(s.swimmers, sw)
	return sw, nil
}

func (s *stubDeps) GetSwimmer(ctx context.Context, id int) (model.Swimmer, error) {
	for _, sw := range s.swimmers {
		if sw.ID == id {
			return sw, nil
		}
	}
	return model.Swimmer{}, repository.ErrNotFound
}

func (s *stubDeps) UpdateSwimmer(ctx context.Context, id int, patch model.SwimmerPatch) (model.Swimmer, error) {
	for i, sw := range s.swimmers {
		if sw.ID != id {
			continue
		}
		if patch.Team != nil {
			sw.Team = *patch.Team
		}
		if patch.Age != nil {
			sw.Age = *patch.Age
		}
		s.swimmers[i] = sw
		return sw, nil
	}
	return model.Swimmer{}, repository.ErrNotFound
}

func (s *stubDeps) DeleteSwimmer(ctx context.Context, id int) error {
	for i, sw := range s.swimmers {
		if sw.ID == id {
			s.swimmers = append(s.swimmers[:i], s.swimmers[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *stubDeps) ListRaces(ctx context.Context, f repository.RaceFilter) []model.RaceResult {
	s.lastFilter = f
	return s.races
}

func (s *stubDeps) SubmitRace(ctx context.Context, in repository.NewRace) (model.RaceResult, error) {
	if s.submitErr != nil {
		return model.RaceResult{}, s.submitErr
	}
	race := model.RaceResult{
		ID: len(s.races) + 1, SwimmerID: in.SwimmerID, Event: in.Event,
		Time: in.Time, MeetID: in.MeetID, MeetName: in.MeetName, Date: in.Date, IsPB: true,
	}
	s.races = append(s.races, race)
	return race, nil
}

func (s *stubDeps) Rankings(ctx context.Context, event, gender, ageGroup string) ([]model.RankingEntry, error) {
	if event == "" {
		return nil, ranking.ErrMissingEvent
	}
	return s.rankings, nil
}

func (s *stubDeps) PersonalBests(ctx context.Context, swimmerID int) (map[string]model.BestTime, error) {
	return s.pbs, nil
}

func (s *stubDeps) Events(ctx context.Context) []model.Event { return s.events }

func (s *stubDeps) Counts(ctx context.Context) (int, int, int) {
	return len(s.swimmers), len(s.races), len(s.events)
}

func newTestRouter(deps api.Dependencies) *mux.Router {
	r := mux.NewRouter()
	api.NewServer(deps).Register(context.Background(), r)
	return r
}

func seededDeps() *stubDeps {
	return &stubDeps{
		swimmers: []model.Swimmer{
			{ID: 1, Name: "Alex Martinez", Age: 26, Gender: "M", Team: "Brooklyn Dolphins", AgeGroup: "25-29"},
			{ID: 2, Name: "Dana Kim", Age: 31, Gender: "F", Team: "Queens Sharks", AgeGroup: "30-34"},
		},
		events: []model.Event{
			{ID: 1, Name: "50m Freestyle", Code: "50free", Distance: 50, Stroke: "freestyle", Pool: "SCM"},
		},
		pbs: map[string]model.BestTime{
			"50free": {Time: "25.50", Meet: "Spring Open", Date: "2026-03-01"},
		},
	}
}

func doJSON(r *mux.Router, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSwimmerRoutes(t *testing.T) {
	Convey("Given a router over a seeded registry", t, func() {
		deps := seededDeps()
		router := newTestRouter(deps)

		Convey("When listing swimmers", func() {
			rec := doJSON(router, http.MethodGet, "/api/swimmers", nil)

			Convey("Then all registered swimmers come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got []model.Swimmer
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 2)
			})
		})

		Convey("When listing with a team filter", func() {
			rec := doJSON(router, http.MethodGet, "/api/swimmers?team=queens+sharks", nil)

			Convey("Then the match is case-insensitive", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got []model.Swimmer
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].Name, ShouldEqual, "Dana Kim")
			})
		})

		Convey("When creating a swimmer with a complete body", func() {
			age := 26
			rec := doJSON(router, http.MethodPost, "/api/swimmers", map[string]any{
				"name": "Sam Okafor", "age": age, "gender": "M", "team": "Queens Sharks",
			})

			Convey("Then the record is returned with 201", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
				var got model.Swimmer
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.ID, ShouldEqual, 3)
				So(got.Name, ShouldEqual, "Sam Okafor")
			})
		})

		Convey("When creating a swimmer without a name", func() {
			rec := doJSON(router, http.MethodPost, "/api/swimmers", map[string]any{
				"age": 26, "gender": "M", "team": "Queens Sharks",
			})

			Convey("Then the request is rejected naming the field", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "missing required field: name")
			})
		})

		Convey("When creating a swimmer with a non-JSON body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/swimmers", strings.NewReader("not json"))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Convey("Then the request is rejected as undecodable", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "Request body must be JSON")
			})
		})

		Convey("When fetching an unknown swimmer", func() {
			rec := doJSON(router, http.MethodGet, "/api/swimmers/99", nil)

			Convey("Then the body says the swimmer is missing", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				So(rec.Body.String(), ShouldContainSubstring, "Swimmer not found")
			})
		})

		Convey("When updating a swimmer's team", func() {
			rec := doJSON(router, http.MethodPut, "/api/swimmers/1", map[string]any{"team": "Harlem Waves"})

			Convey("Then the merged record comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got model.Swimmer
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.Team, ShouldEqual, "Harlem Waves")
				So(got.Name, ShouldEqual, "Alex Martinez")
			})
		})

		Convey("When deleting a swimmer", func() {
			rec := doJSON(router, http.MethodDelete, "/api/swimmers/2", nil)

			Convey("Then a confirmation message is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "Swimmer deleted")
			})
		})

		Convey("When fetching a swimmer's personal bests", func() {
			rec := doJSON(router, http.MethodGet, "/api/swimmers/1/pbs", nil)

			Convey("Then the per-event mapping is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got map[string]model.BestTime
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got["50free"].Time, ShouldEqual, "25.50")
			})
		})
	})
}

func TestRaceRoutes(t *testing.T) {
	Convey("Given a router over the race ledger", t, func() {
		deps := seededDeps()
		router := newTestRouter(deps)

		Convey("When submitting a complete race result", func() {
			rec := doJSON(router, http.MethodPost, "/api/races", map[string]any{
				"swimmer_id": 1, "event": "50free", "time": "25.50", "meet_id": 1,
			})

			Convey("Then the stored record carries the isPB decision", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
				var got model.RaceResult
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.IsPB, ShouldBeTrue)
			})
		})

		Convey("When submitting without a time", func() {
			rec := doJSON(router, http.MethodPost, "/api/races", map[string]any{
				"swimmer_id": 1, "event": "50free", "meet_id": 1,
			})

			Convey("Then the request is rejected naming the field", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "missing required field: time")
			})
		})

		Convey("When the ledger rejects the time format", func() {
			deps.submitErr = fmt.Errorf("%w: %q", racetime.ErrFormat, "1:2:3")
			rec := doJSON(router, http.MethodPost, "/api/races", map[string]any{
				"swimmer_id": 1, "event": "50free", "time": "1:2:3", "meet_id": 1,
			})

			Convey("Then the failure surfaces as a bad request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When listing with id filters", func() {
			rec := doJSON(router, http.MethodGet, "/api/races?event=50free&meet_id=2&swimmer_id=1", nil)

			Convey("Then the filters reach the ledger parsed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastFilter, ShouldResemble, repository.RaceFilter{Event: "50free", MeetID: 2, SwimmerID: 1})
			})
		})

		Convey("When a numeric filter is not a number", func() {
			rec := doJSON(router, http.MethodGet, "/api/races?meet_id=abc", nil)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "meet_id must be an integer")
			})
		})
	})
}

func TestRankingAndCatalogueRoutes(t *testing.T) {
	Convey("Given a router with rankings and events available", t, func() {
		deps := seededDeps()
		deps.rankings = []model.RankingEntry{
			{Rank: 1, SwimmerID: 1, Name: "Alex Martinez", Team: "Brooklyn Dolphins", Age: 26, AgeGroup: "25-29", Time: "25.50", Meet: "Spring Open", Date: "2026-03-01"},
		}
		router := newTestRouter(deps)

		Convey("When requesting rankings without an event", func() {
			rec := doJSON(router, http.MethodGet, "/api/rankings", nil)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "event parameter required")
			})
		})

		Convey("When requesting rankings for an event", func() {
			rec := doJSON(router, http.MethodGet, "/api/rankings?event=50free", nil)

			Convey("Then the leaderboard is returned in rank order", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got []model.RankingEntry
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got[0].Rank, ShouldEqual, 1)
				So(got[0].Name, ShouldEqual, "Alex Martinez")
			})
		})

		Convey("When listing the event catalogue", func() {
			rec := doJSON(router, http.MethodGet, "/api/events", nil)

			Convey("Then the catalogue is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got []model.Event
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].Code, ShouldEqual, "50free")
			})
		})

		Convey("When probing health", func() {
			rec := doJSON(router, http.MethodGet, "/api/health", nil)

			Convey("Then the payload reports status and counts", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got["status"], ShouldEqual, "healthy")
				So(got["swimmers_count"], ShouldEqual, float64(2))
				So(got["races_count"], ShouldEqual, float64(0))
			})
		})
	})
}

func TestMiddleware(t *testing.T) {
	Convey("Given a router with the default middleware chain", t, func() {
		router := newTestRouter(seededDeps())

		Convey("When any request is served", func() {
			rec := doJSON(router, http.MethodGet, "/api/events", nil)

			Convey("Then a request id and CORS headers are attached", func() {
				So(rec.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
				So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			})
		})

		Convey("When a preflight request arrives", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/swimmers", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Convey("Then it short-circuits with no content", func() {
				So(rec.Code, ShouldEqual, http.StatusNoContent)
				So(rec.Header().Get("Access-Control-Allow-Methods"), ShouldNotBeEmpty)
			})
		})

		Convey("When scraping the metrics endpoint", func() {
			rec := doJSON(router, http.MethodGet, "/metrics", nil)

			Convey("Then the exposition is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
