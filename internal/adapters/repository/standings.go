package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fightlab/ringside/pkg/metrics"
)

// InMemoryStandings implements Standings with a point tally per fighter
// and a lazily rebuilt sorted snapshot. Writes invalidate the snapshot;
// the next read rebuilds it. Standings change only when a match
// completes, so rebuilds are rare relative to reads.
type InMemoryStandings struct {
	mu       sync.RWMutex
	totals   map[string]*fighterTally
	snapshot []StandingsEntry
	stale    bool
}

type fighterTally struct {
	points  int
	matches int
}

// NewInMemoryStandings creates an empty standings table.
func NewInMemoryStandings() *InMemoryStandings {
	return &InMemoryStandings{totals: make(map[string]*fighterTally)}
}

// RecordPoints implements Standings.
func (s *InMemoryStandings) RecordPoints(_ context.Context, fighterID string, points int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.totals[fighterID]
	if !ok {
		t = &fighterTally{}
		s.totals[fighterID] = t
	}
	t.points += points
	t.matches++
	s.stale = true
	metrics.RecordStandingsUpdate()
}

// Rank implements Standings.
func (s *InMemoryStandings) Rank(_ context.Context, fighterID string) (StandingsEntry, error) {
	entries := s.current()
	for _, e := range entries {
		if e.FighterID == fighterID {
			return e, nil
		}
	}
	return StandingsEntry{}, fmt.Errorf("fighter %s: %w", fighterID, ErrNotFound)
}

// TopN implements Standings.
func (s *InMemoryStandings) TopN(_ context.Context, n int) ([]StandingsEntry, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}
	entries := s.current()
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]StandingsEntry, n)
	copy(out, entries[:n])
	return out, nil
}

// Count implements Standings.
func (s *InMemoryStandings) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.totals)
}

// current returns the sorted snapshot, rebuilding it when stale.
// Ordering: points desc, fighter id asc.
func (s *InMemoryStandings) current() []StandingsEntry {
	s.mu.RLock()
	if !s.stale {
		snap := s.snapshot
		s.mu.RUnlock()
		return snap
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stale {
		return s.snapshot
	}
	start := time.Now()
	entries := make([]StandingsEntry, 0, len(s.totals))
	for id, t := range s.totals {
		entries = append(entries, StandingsEntry{FighterID: id, Points: t.points, Matches: t.matches})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].FighterID < entries[j].FighterID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	s.snapshot = entries
	s.stale = false
	metrics.RecordStandingsSnapshotRebuild(time.Since(start))
	return s.snapshot
}
