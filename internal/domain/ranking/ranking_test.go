package ranking_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/model"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/racetime"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeRaces serves ledger slices from a fixed list, in list order.
type fakeRaces struct {
	races []model.RaceResult
}

func (f *fakeRaces) ByEvent(ctx context.Context, event string) []model.RaceResult {
	var out []model.RaceResult
	for _, r := range f.races {
		if r.Event == event {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeRaces) BySwimmer(ctx context.Context, swimmerID int) []model.RaceResult {
	var out []model.RaceResult
	for _, r := range f.races {
		if r.SwimmerID == swimmerID {
			out = append(out, r)
		}
	}
	return out
}

// fakeSwimmers resolves ids from a fixed map.
type fakeSwimmers struct {
	swimmers map[int]model.Swimmer
}

func (f *fakeSwimmers) Get(ctx context.Context, id int) (model.Swimmer, error) {
	sw, ok := f.swimmers[id]
	if !ok {
		return model.Swimmer{}, fmt.Errorf("swimmer %d: %w", id, errNotFound)
	}
	return sw, nil
}

var errNotFound = errors.New("not found")

func testEngine() (*ranking.Engine, *fakeRaces) {
	swimmers := &fakeSwimmers{swimmers: map[int]model.Swimmer{
		1: {ID: 1, Name: "Alex Martinez", Age: 26, Gender: "M", Team: "Brooklyn Dolphins", AgeGroup: "25-29"},
		2: {ID: 2, Name: "Dana Kim", Age: 31, Gender: "F", Team: "Queens Sharks", AgeGroup: "30-34"},
		3: {ID: 3, Name: "Sam Okafor", Age: 27, Gender: "M", Team: "Queens Sharks", AgeGroup: "25-29"},
	}}
	races := &fakeRaces{races: []model.RaceResult{
		{ID: 1, SwimmerID: 1, Event: "50free", Time: "25.50", MeetID: 1, MeetName: "Spring Open", Date: "2026-03-01"},
		{ID: 2, SwimmerID: 2, Event: "50free", Time: "27.10", MeetID: 1, MeetName: "Spring Open", Date: "2026-03-01"},
		{ID: 3, SwimmerID: 1, Event: "50free", Time: "26.20", MeetID: 2, MeetName: "Summer Invite", Date: "2026-06-01"},
		{ID: 4, SwimmerID: 3, Event: "50free", Time: "25.90", MeetID: 2, MeetName: "Summer Invite", Date: "2026-06-01"},
		{ID: 5, SwimmerID: 1, Event: "100fly", Time: "58.40", MeetID: 2, MeetName: "Summer Invite", Date: "2026-06-01"},
	}}
	return ranking.New(swimmers, races), races
}

func TestEngine_Rankings(t *testing.T) {
	ctx := context.Background()

	Convey("Given an engine over three swimmers and two events", t, func() {
		engine, races := testEngine()

		Convey("When requesting rankings without an event", func() {
			_, err := engine.Rankings(ctx, "", "", "")

			Convey("Then it fails with ErrMissingEvent", func() {
				So(errors.Is(err, ranking.ErrMissingEvent), ShouldBeTrue)
			})
		})

		Convey("When requesting 50free rankings", func() {
			entries, err := engine.Rankings(ctx, "50free", "", "")
			So(err, ShouldBeNil)

			Convey("Then each swimmer appears once with their best time", func() {
				So(len(entries), ShouldEqual, 3)
				So(entries[0].Name, ShouldEqual, "Alex Martinez")
				So(entries[0].Time, ShouldEqual, "25.50")
			})

			Convey("And parsed times are non-decreasing with ranks 1..N", func() {
				var prev float64
				for i, e := range entries {
					So(e.Rank, ShouldEqual, i+1)
					s, err := racetime.Parse(e.Time)
					So(err, ShouldBeNil)
					So(s, ShouldBeGreaterThanOrEqualTo, prev)
					prev = s
				}
			})

			Convey("And the winning race's meet and date are carried", func() {
				So(entries[0].Meet, ShouldEqual, "Spring Open")
				So(entries[0].Date, ShouldEqual, "2026-03-01")
			})
		})

		Convey("When filtering by gender", func() {
			entries, err := engine.Rankings(ctx, "50free", "M", "")
			So(err, ShouldBeNil)

			Convey("Then only matching swimmers rank, renumbered from 1", func() {
				So(len(entries), ShouldEqual, 2)
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[0].Name, ShouldEqual, "Alex Martinez")
				So(entries[1].Name, ShouldEqual, "Sam Okafor")
			})
		})

		Convey("When filtering by age group", func() {
			entries, err := engine.Rankings(ctx, "50free", "", "30-34")
			So(err, ShouldBeNil)

			Convey("Then only that bucket ranks", func() {
				So(len(entries), ShouldEqual, 1)
				So(entries[0].Name, ShouldEqual, "Dana Kim")
			})
		})

		Convey("When a race references an unregistered swimmer", func() {
			races.races = append(races.races, model.RaceResult{
				ID: 6, SwimmerID: 99, Event: "50free", Time: "20.00", MeetID: 3,
			})
			entries, err := engine.Rankings(ctx, "50free", "", "")
			So(err, ShouldBeNil)

			Convey("Then the orphan entry is skipped silently", func() {
				So(len(entries), ShouldEqual, 3)
				So(entries[0].Name, ShouldEqual, "Alex Martinez")
			})
		})

		Convey("When two swimmers tie on the best time", func() {
			races.races = append(races.races, model.RaceResult{
				ID: 6, SwimmerID: 2, Event: "100fly", Time: "58.40", MeetID: 3, MeetName: "Fall Classic", Date: "2026-09-01",
			})
			entries, err := engine.Rankings(ctx, "100fly", "", "")
			So(err, ShouldBeNil)

			Convey("Then first-seen ledger order breaks the tie", func() {
				So(len(entries), ShouldEqual, 2)
				So(entries[0].Name, ShouldEqual, "Alex Martinez")
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Name, ShouldEqual, "Dana Kim")
				So(entries[1].Rank, ShouldEqual, 2)
			})
		})

		Convey("When a race has no meet name", func() {
			races.races = append(races.races, model.RaceResult{
				ID: 6, SwimmerID: 2, Event: "100back", Time: "1:10.00", MeetID: 3,
			})
			entries, err := engine.Rankings(ctx, "100back", "", "")
			So(err, ShouldBeNil)

			Convey(`Then meet and date fall back to "Unknown"`, func() {
				So(len(entries), ShouldEqual, 1)
				So(entries[0].Meet, ShouldEqual, "Unknown")
				So(entries[0].Date, ShouldEqual, "Unknown")
			})
		})

		Convey("When the event has no races at all", func() {
			entries, err := engine.Rankings(ctx, "400im", "", "")

			Convey("Then the leaderboard is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 0)
			})
		})
	})
}

func TestEngine_PersonalBests(t *testing.T) {
	ctx := context.Background()

	Convey("Given an engine with race history", t, func() {
		engine, _ := testEngine()

		Convey("When fetching PBs for a swimmer with races in two events", func() {
			pbs, err := engine.PersonalBests(ctx, 1)
			So(err, ShouldBeNil)

			Convey("Then the fastest time per event wins", func() {
				So(len(pbs), ShouldEqual, 2)
				So(pbs["50free"].Time, ShouldEqual, "25.50")
				So(pbs["50free"].Meet, ShouldEqual, "Spring Open")
				So(pbs["100fly"].Time, ShouldEqual, "58.40")
			})

			Convey("And calling again without writes returns identical results", func() {
				again, err := engine.PersonalBests(ctx, 1)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, pbs)
			})
		})

		Convey("When fetching PBs for a swimmer with no races", func() {
			pbs, err := engine.PersonalBests(ctx, 42)

			Convey("Then the mapping is empty", func() {
				So(err, ShouldBeNil)
				So(len(pbs), ShouldEqual, 0)
			})
		})
	})
}
