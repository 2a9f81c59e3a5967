// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	repository "github.com/morgan-franklin/swimmeet-api-testing/internal/adapters/repository"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/adapters/storage"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/model"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/ranking"
	"github.com/morgan-franklin/swimmeet-api-testing/pkg/logger"
	"github.com/morgan-franklin/swimmeet-api-testing/pkg/metrics"
)

// Service owns the swimmer registry, the race ledger, the event catalogue
// and the snapshot store, and exposes the operations the HTTP API needs.
//
// Every successful mutation is followed by a full-collection snapshot
// write. When the write fails the in-memory mutation is rolled back and
// the operation fails, keeping memory and disk consistent.
//
// Mutating methods hold the service write lock across the whole
// snapshot-mutate-persist-rollback sequence. The store locks alone keep
// ids unique but cannot stop a rollback from erasing a concurrent
// mutation that landed between the snapshot and the restore.
type Service struct {
	mu sync.RWMutex

	swimmers  *repository.SwimmerStore
	races     *repository.RaceLedger
	events    []model.Event
	engine    *ranking.Engine
	snapshots *storage.Store

	dataDir string
	now     func() time.Time
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataDir sets the snapshot directory.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the clock used for default race dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir: "data",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the snapshots and builds the in-memory state.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.snapshots = storage.New(s.dataDir)

	swimmers, err := s.snapshots.LoadSwimmers(ctx)
	if err != nil {
		return fmt.Errorf("load swimmers: %w", err)
	}
	races, err := s.snapshots.LoadRaces(ctx)
	if err != nil {
		return fmt.Errorf("load races: %w", err)
	}
	events, err := s.snapshots.LoadEvents(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	s.swimmers = repository.NewSwimmerStore(swimmers)
	s.races = repository.NewRaceLedger(races, repository.WithNow(s.now))
	s.events = events
	s.engine = ranking.New(s.swimmers, s.races)

	metrics.UpdateSwimmerCount(s.swimmers.Count(ctx))
	metrics.UpdateRaceCount(s.races.Count(ctx))
	metrics.UpdateEventCount(len(s.events))

	s.started = true
	s.logger.Info(ctx, "swimmeet service started",
		logger.String("dataDir", s.dataDir),
		logger.Int("swimmers", s.swimmers.Count(ctx)),
		logger.Int("races", s.races.Count(ctx)),
		logger.Int("events", len(s.events)),
	)
	return nil
}

// Stop marks the service stopped. State is already on disk after every
// mutation, so there is nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "swimmeet service stopped")
}

// ListSwimmers returns swimmers, optionally narrowed to one team
// (case-insensitive exact match).
func (s *Service) ListSwimmers(ctx context.Context, team string) []model.Swimmer {
	return s.swimmers.List(ctx, team)
}

// CreateSwimmer registers a swimmer and persists the registry snapshot.
func (s *Service) CreateSwimmer(ctx context.Context, in repository.NewSwimmer) (model.Swimmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.swimmers.Snapshot(ctx)
	sw, err := s.swimmers.Create(ctx, in)
	if err != nil {
		return model.Swimmer{}, err
	}
	if err := s.persistSwimmers(ctx, before); err != nil {
		return model.Swimmer{}, err
	}
	s.logger.Info(ctx, "swimmer registered",
		logger.Int("id", sw.ID),
		logger.String("team", sw.Team),
		logger.String("ageGroup", sw.AgeGroup),
	)
	return sw, nil
}

// GetSwimmer returns a swimmer by id.
func (s *Service) GetSwimmer(ctx context.Context, id int) (model.Swimmer, error) {
	return s.swimmers.Get(ctx, id)
}

// UpdateSwimmer merges a partial update and persists the registry snapshot.
func (s *Service) UpdateSwimmer(ctx context.Context, id int, patch model.SwimmerPatch) (model.Swimmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.swimmers.Snapshot(ctx)
	sw, err := s.swimmers.Update(ctx, id, patch)
	if err != nil {
		return model.Swimmer{}, err
	}
	if err := s.persistSwimmers(ctx, before); err != nil {
		return model.Swimmer{}, err
	}
	return sw, nil
}

// DeleteSwimmer removes a swimmer and persists the registry snapshot.
func (s *Service) DeleteSwimmer(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.swimmers.Snapshot(ctx)
	if err := s.swimmers.Delete(ctx, id); err != nil {
		return err
	}
	return s.persistSwimmers(ctx, before)
}

// ListRaces returns race results narrowed by the filter.
func (s *Service) ListRaces(ctx context.Context, f repository.RaceFilter) []model.RaceResult {
	return s.races.List(ctx, f)
}

// SubmitRace appends a race result and persists the ledger snapshot.
func (s *Service) SubmitRace(ctx context.Context, in repository.NewRace) (model.RaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.races.Snapshot(ctx)
	race, err := s.races.Append(ctx, in)
	if err != nil {
		return model.RaceResult{}, err
	}
	if err := s.persistRaces(ctx, before); err != nil {
		return model.RaceResult{}, err
	}
	if race.IsPB {
		metrics.RecordPersonalBest()
	}
	s.logger.Info(ctx, "race recorded",
		logger.Int("id", race.ID),
		logger.Int("swimmerID", race.SwimmerID),
		logger.String("event", race.Event),
		logger.String("time", race.Time),
		logger.Bool("isPB", race.IsPB),
	)
	return race, nil
}

// Rankings returns the leaderboard for an event with optional gender and
// age-group filters.
func (s *Service) Rankings(ctx context.Context, event, gender, ageGroup string) ([]model.RankingEntry, error) {
	start := time.Now()
	entries, err := s.engine.Rankings(ctx, event, gender, ageGroup)
	if err != nil {
		return nil, err
	}
	metrics.RecordRankingQuery()
	metrics.RecordRankingLatency(float64(time.Since(start).Milliseconds()))
	return entries, nil
}

// PersonalBests returns the fastest time per event for one swimmer.
func (s *Service) PersonalBests(ctx context.Context, swimmerID int) (map[string]model.BestTime, error) {
	return s.engine.PersonalBests(ctx, swimmerID)
}

// Events returns the static event catalogue.
func (s *Service) Events(ctx context.Context) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Counts reports collection sizes for the health endpoint.
func (s *Service) Counts(ctx context.Context) (swimmers, races, events int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.swimmers.Count(ctx), s.races.Count(ctx), len(s.events)
}

// persistSwimmers writes the registry snapshot, rolling the store back to
// the pre-mutation state when the write fails.
func (s *Service) persistSwimmers(ctx context.Context, before []model.Swimmer) error {
	start := time.Now()
	if err := s.snapshots.SaveSwimmers(ctx, s.swimmers.Snapshot(ctx)); err != nil {
		metrics.RecordSnapshotWriteError()
		s.swimmers.Restore(ctx, before)
		s.logger.Error(ctx, "swimmer snapshot write failed, mutation rolled back", logger.Error(err))
		return err
	}
	metrics.RecordSnapshotWrite()
	metrics.RecordSnapshotWriteDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateSwimmerCount(s.swimmers.Count(ctx))
	return nil
}

// persistRaces writes the ledger snapshot with the same rollback policy.
func (s *Service) persistRaces(ctx context.Context, before []model.RaceResult) error {
	start := time.Now()
	if err := s.snapshots.SaveRaces(ctx, s.races.Snapshot(ctx)); err != nil {
		metrics.RecordSnapshotWriteError()
		s.races.Restore(ctx, before)
		s.logger.Error(ctx, "race snapshot write failed, mutation rolled back", logger.Error(err))
		return err
	}
	metrics.RecordSnapshotWrite()
	metrics.RecordSnapshotWriteDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateRaceCount(s.races.Count(ctx))
	return nil
}
