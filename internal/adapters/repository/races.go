package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/model"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/racetime"
)

const dateLayout = "2006-01-02"

// NewRace carries the fields for one race submission. Date may be empty,
// in which case the ledger stamps the current date.
type NewRace struct {
	SwimmerID int
	Event     string
	Time      string
	MeetID    int
	MeetName  string
	Lane      int
	Heat      int
	Date      string
}

// RaceFilter narrows List results. Zero values mean "no filter"; ids are
// always positive so zero is unambiguous. Filters combine conjunctively.
type RaceFilter struct {
	Event     string
	MeetID    int
	SwimmerID int
}

// RaceLedger owns all race results. Results are append-only: nothing ever
// updates or deletes a recorded swim, and the isPB flag is decided once at
// append time and never revisited.
type RaceLedger struct {
	mu    sync.RWMutex
	races []model.RaceResult
	now   func() time.Time
}

// LedgerOption applies a configuration option to the RaceLedger.
type LedgerOption func(*RaceLedger)

// WithNow overrides the clock used for default race dates.
func WithNow(now func() time.Time) LedgerOption {
	return func(l *RaceLedger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewRaceLedger builds a ledger seeded with existing results.
func NewRaceLedger(seed []model.RaceResult, opts ...LedgerOption) *RaceLedger {
	l := &RaceLedger{now: time.Now}
	l.races = append(l.races, seed...)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append records a race result. IsPB is true when the parsed time is
// strictly less than every prior time by the same swimmer in the same
// event; equal times are not PBs. The swimmer id is taken as-is, without
// an existence check against the registry (association by key only).
func (l *RaceLedger) Append(ctx context.Context, in NewRace) (model.RaceResult, error) {
	switch {
	case in.SwimmerID <= 0:
		return model.RaceResult{}, fmt.Errorf("%w: swimmer_id", ErrMissingField)
	case in.Event == "":
		return model.RaceResult{}, fmt.Errorf("%w: event", ErrMissingField)
	case in.Time == "":
		return model.RaceResult{}, fmt.Errorf("%w: time", ErrMissingField)
	case in.MeetID <= 0:
		return model.RaceResult{}, fmt.Errorf("%w: meet_id", ErrMissingField)
	}

	seconds, err := racetime.Parse(in.Time)
	if err != nil {
		return model.RaceResult{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	date := in.Date
	if date == "" {
		date = l.now().Format(dateLayout)
	}

	race := model.RaceResult{
		ID:        l.nextID(),
		SwimmerID: in.SwimmerID,
		Event:     in.Event,
		Time:      in.Time,
		MeetID:    in.MeetID,
		MeetName:  in.MeetName,
		Lane:      in.Lane,
		Heat:      in.Heat,
		Date:      date,
		IsPB:      l.isPersonalBest(in.SwimmerID, in.Event, seconds),
	}
	l.races = append(l.races, race)
	return race, nil
}

// isPersonalBest reports whether seconds beats every prior time for the
// swimmer/event pair. Caller must hold the lock. Prior entries whose
// stored time no longer parses are ignored rather than poisoning every
// later submission.
func (l *RaceLedger) isPersonalBest(swimmerID int, event string, seconds float64) bool {
	for _, r := range l.races {
		if r.SwimmerID != swimmerID || r.Event != event {
			continue
		}
		prior, err := racetime.Parse(r.Time)
		if err != nil {
			continue
		}
		if seconds >= prior {
			return false
		}
	}
	return true
}

// List returns results in ledger order, narrowed by the filter.
func (l *RaceLedger) List(ctx context.Context, f RaceFilter) []model.RaceResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.RaceResult, 0, len(l.races))
	for _, r := range l.races {
		if f.Event != "" && r.Event != f.Event {
			continue
		}
		if f.MeetID != 0 && r.MeetID != f.MeetID {
			continue
		}
		if f.SwimmerID != 0 && r.SwimmerID != f.SwimmerID {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ByEvent returns all results for one event in ledger order.
func (l *RaceLedger) ByEvent(ctx context.Context, event string) []model.RaceResult {
	return l.List(ctx, RaceFilter{Event: event})
}

// BySwimmer returns all results for one swimmer in ledger order.
func (l *RaceLedger) BySwimmer(ctx context.Context, swimmerID int) []model.RaceResult {
	return l.List(ctx, RaceFilter{SwimmerID: swimmerID})
}

// Count returns the number of recorded results.
func (l *RaceLedger) Count(ctx context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.races)
}

// Snapshot returns a copy of all results for persistence or rollback.
func (l *RaceLedger) Snapshot(ctx context.Context) []model.RaceResult {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.RaceResult, len(l.races))
	copy(out, l.races)
	return out
}

// Restore replaces the ledger contents with a previously taken snapshot.
func (l *RaceLedger) Restore(ctx context.Context, snapshot []model.RaceResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.races = make([]model.RaceResult, len(snapshot))
	copy(l.races, snapshot)
}

// nextID allocates max existing id + 1, scoped to the ledger.
// Caller must hold the write lock.
func (l *RaceLedger) nextID() int {
	maxID := 0
	for _, r := range l.races {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}
