// Package storage persists full-collection snapshots as flat JSON files.
//
// The layout mirrors the state the API serves: three independent JSON
// arrays (swimmers.json, race_results.json, events.json), each rewritten
// in full after every successful mutation. Writes go through a temp file
// and rename so a crash mid-write never leaves a truncated snapshot.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/morgan-franklin/swimmeet-api-testing/internal/domain/model"
)

// Snapshot file names inside the data directory.
const (
	swimmersFile = "swimmers.json"
	racesFile    = "race_results.json"
	eventsFile   = "events.json"
)

// Store reads and writes snapshot files under one data directory.
type Store struct {
	dir string
}

// New builds a Store rooted at dir. The directory is created on first
// write, not here.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// LoadSwimmers reads the swimmer snapshot. A missing file is an empty
// collection, not an error.
func (s *Store) LoadSwimmers(ctx context.Context) ([]model.Swimmer, error) {
	var out []model.Swimmer
	if err := s.load(swimmersFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveSwimmers rewrites the swimmer snapshot.
func (s *Store) SaveSwimmers(ctx context.Context, swimmers []model.Swimmer) error {
	return s.save(swimmersFile, swimmers)
}

// LoadRaces reads the race-result snapshot.
func (s *Store) LoadRaces(ctx context.Context) ([]model.RaceResult, error) {
	var out []model.RaceResult
	if err := s.load(racesFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveRaces rewrites the race-result snapshot.
func (s *Store) SaveRaces(ctx context.Context, races []model.RaceResult) error {
	return s.save(racesFile, races)
}

// LoadEvents reads the event catalogue, falling back to the built-in
// catalogue when no snapshot exists.
func (s *Store) LoadEvents(ctx context.Context) ([]model.Event, error) {
	var out []model.Event
	if err := s.load(eventsFile, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return DefaultEvents(), nil
	}
	return out, nil
}

// SaveEvents rewrites the event catalogue snapshot.
func (s *Store) SaveEvents(ctx context.Context, events []model.Event) error {
	return s.save(eventsFile, events)
}

func (s *Store) load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}
	return nil
}

func (s *Store) save(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSave, name, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSave, name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSave, name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %s: %w", ErrSave, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %s: %w", ErrSave, name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %s: %w", ErrSave, name, err)
	}
	return nil
}
