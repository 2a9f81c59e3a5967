// Package repository holds the in-memory stores that own all swimmer and
// race-result records. Both stores serialize mutations behind a single
// writer lock, so id allocation stays unique under concurrent requests.
package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/agegroup"
	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/model"
)

// NewSwimmer carries the fields required to register a swimmer. Presence of
// the fields themselves is checked at the HTTP boundary; the store guards
// against empty values.
type NewSwimmer struct {
	Name   string
	Age    int
	Gender string
	Team   string
	Email  string
}

// SwimmerStore owns all swimmer records. Iteration preserves insertion
// order; ids are unique and allocated as max existing + 1.
type SwimmerStore struct {
	mu       sync.RWMutex
	swimmers []model.Swimmer
}

// NewSwimmerStore builds a store seeded with existing records, typically
// loaded from a snapshot.
func NewSwimmerStore(seed []model.Swimmer) *SwimmerStore {
	s := &SwimmerStore{}
	s.swimmers = append(s.swimmers, seed...)
	return s
}

// Create registers a swimmer, allocating its id and deriving the age group.
func (s *SwimmerStore) Create(ctx context.Context, in NewSwimmer) (model.Swimmer, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return model.Swimmer{}, fmt.Errorf("%w: name", ErrMissingField)
	case strings.TrimSpace(in.Gender) == "":
		return model.Swimmer{}, fmt.Errorf("%w: gender", ErrMissingField)
	case strings.TrimSpace(in.Team) == "":
		return model.Swimmer{}, fmt.Errorf("%w: team", ErrMissingField)
	case in.Age < 0:
		return model.Swimmer{}, fmt.Errorf("%w: age must not be negative", ErrMissingField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sw := model.Swimmer{
		ID:       s.nextID(),
		Name:     in.Name,
		Age:      in.Age,
		Gender:   in.Gender,
		Team:     in.Team,
		AgeGroup: agegroup.Classify(in.Age),
		Email:    in.Email,
	}
	s.swimmers = append(s.swimmers, sw)
	return sw, nil
}

// Get returns the swimmer with the given id, or ErrNotFound.
func (s *SwimmerStore) Get(ctx context.Context, id int) (model.Swimmer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sw := range s.swimmers {
		if sw.ID == id {
			return sw, nil
		}
	}
	return model.Swimmer{}, fmt.Errorf("swimmer %d: %w", id, ErrNotFound)
}

// List returns swimmers in insertion order. A non-empty team filters to a
// case-insensitive exact team match.
func (s *SwimmerStore) List(ctx context.Context, team string) []model.Swimmer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Swimmer, 0, len(s.swimmers))
	for _, sw := range s.swimmers {
		if team != "" && !strings.EqualFold(sw.Team, team) {
			continue
		}
		out = append(out, sw)
	}
	return out
}

// Update merges the non-nil patch fields over the stored record. When the
// age changes the age group is reclassified so rankings filters never see
// a stale bucket.
func (s *SwimmerStore) Update(ctx context.Context, id int, patch model.SwimmerPatch) (model.Swimmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.swimmers {
		if s.swimmers[i].ID != id {
			continue
		}
		sw := &s.swimmers[i]
		if patch.Name != nil {
			sw.Name = *patch.Name
		}
		if patch.Gender != nil {
			sw.Gender = *patch.Gender
		}
		if patch.Team != nil {
			sw.Team = *patch.Team
		}
		if patch.Email != nil {
			sw.Email = *patch.Email
		}
		if patch.Age != nil && *patch.Age != sw.Age {
			sw.Age = *patch.Age
			sw.AgeGroup = agegroup.Classify(sw.Age)
		}
		return *sw, nil
	}
	return model.Swimmer{}, fmt.Errorf("swimmer %d: %w", id, ErrNotFound)
}

// Delete removes the swimmer with the given id, or returns ErrNotFound.
func (s *SwimmerStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.swimmers {
		if s.swimmers[i].ID == id {
			s.swimmers = append(s.swimmers[:i], s.swimmers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("swimmer %d: %w", id, ErrNotFound)
}

// Count returns the number of registered swimmers.
func (s *SwimmerStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.swimmers)
}

// Snapshot returns a copy of all records for persistence or rollback.
func (s *SwimmerStore) Snapshot(ctx context.Context) []model.Swimmer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Swimmer, len(s.swimmers))
	copy(out, s.swimmers)
	return out
}

// Restore replaces the store contents with a previously taken snapshot.
// Used to roll back a mutation whose persistence write failed.
func (s *SwimmerStore) Restore(ctx context.Context, snapshot []model.Swimmer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swimmers = make([]model.Swimmer, len(snapshot))
	copy(s.swimmers, snapshot)
}

// nextID allocates max existing id + 1, or 1 for an empty store.
// Caller must hold the write lock.
func (s *SwimmerStore) nextID() int {
	maxID := 0
	for _, sw := range s.swimmers {
		if sw.ID > maxID {
			maxID = sw.ID
		}
	}
	return maxID + 1
}
