// Package ranking derives event leaderboards and personal bests from race
// history. The engine is stateless: every call recomputes over the full
// ledger, reading through narrow source interfaces.
package ranking

import (
	"context"
	"sort"

	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/model"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/racetime"
)

// RaceSource exposes the slices of race history the engine reads.
type RaceSource interface {
	ByEvent(ctx context.Context, event string) []model.RaceResult
	BySwimmer(ctx context.Context, swimmerID int) []model.RaceResult
}

// SwimmerSource resolves swimmer ids to records. Lookups that fail are
// skipped silently; race results hold a weak reference to swimmers.
type SwimmerSource interface {
	Get(ctx context.Context, id int) (model.Swimmer, error)
}

// Engine joins race history with the swimmer registry to build rankings
// and personal-best summaries.
type Engine struct {
	swimmers SwimmerSource
	races    RaceSource
}

// New constructs an Engine over the given sources.
func New(swimmers SwimmerSource, races RaceSource) *Engine {
	return &Engine{swimmers: swimmers, races: races}
}

// best is a swimmer's winning entry for one event while scanning.
type best struct {
	race    model.RaceResult
	seconds float64
}

// Rankings returns the leaderboard for an event, fastest first, with
// 1-based ranks. Gender and ageGroup are optional exact-match filters.
// Ties keep first-seen ledger order: the sort is stable, and a later equal
// time never displaces an earlier best.
func (e *Engine) Rankings(ctx context.Context, event, gender, ageGroup string) ([]model.RankingEntry, error) {
	if event == "" {
		return nil, ErrMissingEvent
	}

	bestBySwimmer := make(map[int]best)
	var order []int // swimmer ids, first-seen in ledger order
	for _, r := range e.races.ByEvent(ctx, event) {
		seconds, err := racetime.Parse(r.Time)
		if err != nil {
			continue // stored entry predates time validation
		}
		cur, seen := bestBySwimmer[r.SwimmerID]
		if !seen {
			order = append(order, r.SwimmerID)
		}
		if !seen || seconds < cur.seconds {
			bestBySwimmer[r.SwimmerID] = best{race: r, seconds: seconds}
		}
	}

	type scored struct {
		entry   model.RankingEntry
		seconds float64
	}
	rows := make([]scored, 0, len(order))
	for _, sid := range order {
		b := bestBySwimmer[sid]
		sw, err := e.swimmers.Get(ctx, sid)
		if err != nil {
			continue
		}
		if gender != "" && sw.Gender != gender {
			continue
		}
		if ageGroup != "" && sw.AgeGroup != ageGroup {
			continue
		}
		rows = append(rows, scored{
			entry: model.RankingEntry{
				SwimmerID: sid,
				Name:      sw.Name,
				Team:      sw.Team,
				Age:       sw.Age,
				AgeGroup:  sw.AgeGroup,
				Time:      b.race.Time,
				Meet:      orUnknown(b.race.MeetName),
				Date:      orUnknown(b.race.Date),
			},
			seconds: b.seconds,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].seconds < rows[j].seconds
	})

	entries := make([]model.RankingEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.entry
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// PersonalBests returns the fastest time per event for one swimmer. The
// first result for an event seeds the map; later results replace it only
// when strictly faster. An empty map means the swimmer has no races.
func (e *Engine) PersonalBests(ctx context.Context, swimmerID int) (map[string]model.BestTime, error) {
	pbs := make(map[string]model.BestTime)
	bestSeconds := make(map[string]float64)

	for _, r := range e.races.BySwimmer(ctx, swimmerID) {
		seconds, err := racetime.Parse(r.Time)
		if err != nil {
			continue
		}
		if prior, ok := bestSeconds[r.Event]; ok && seconds >= prior {
			continue
		}
		bestSeconds[r.Event] = seconds
		pbs[r.Event] = model.BestTime{
			Time: r.Time,
			Meet: orUnknown(r.MeetName),
			Date: orUnknown(r.Date),
		}
	}
	return pbs, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
