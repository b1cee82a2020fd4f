package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/fightlab/ringside/internal/domain/model"
	"github.com/fightlab/ringside/pkg/metrics"
)

// Default match store configuration.
const defaultShardCount = 8

// InMemoryMatchStore implements MatchStore with id-hashed shards. Each
// shard holds its own lock, so writes to different matches never contend;
// writes to the same match are serialized by the shard lock, satisfying
// the single-writer-per-aggregate requirement of the domain model.
type InMemoryMatchStore struct {
	shards []*matchShard
}

type matchShard struct {
	mu      sync.RWMutex
	matches map[string]*model.Match
}

// NewInMemoryMatchStore creates a sharded in-memory match store.
func NewInMemoryMatchStore(opts ...Option) *InMemoryMatchStore {
	cfg := storeConfig{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &InMemoryMatchStore{shards: make([]*matchShard, cfg.shardCount)}
	for i := range s.shards {
		s.shards[i] = &matchShard{matches: make(map[string]*model.Match)}
	}
	metrics.UpdateStoreShardCount(cfg.shardCount)
	return s
}

func (s *InMemoryMatchStore) shard(id string) *matchShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return s.shards[int(h.Sum32())%len(s.shards)]
}

// Put implements MatchStore.
func (s *InMemoryMatchStore) Put(_ context.Context, m model.Match) error {
	sh := s.shard(m.ID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, ok := sh.matches[m.ID]; ok {
		return fmt.Errorf("match %s: %w", m.ID, ErrConflict)
	}
	stored := cloneMatch(m)
	sh.matches[m.ID] = &stored
	metrics.RecordMatchRegistered()
	return nil
}

// Get implements MatchStore. The returned match is a copy; mutating it
// does not affect the stored aggregate.
func (s *InMemoryMatchStore) Get(_ context.Context, id string) (model.Match, error) {
	sh := s.shard(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	m, ok := sh.matches[id]
	if !ok {
		return model.Match{}, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	return cloneMatch(*m), nil
}

// AddRound implements MatchStore.
func (s *InMemoryMatchStore) AddRound(_ context.Context, matchID string, round model.Round) error {
	sh := s.shard(matchID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	m, ok := sh.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return m.AddRound(cloneRound(round))
}

// AppendEvent implements MatchStore. The round's own AddEvent enforces
// the timestamp window and re-sorts under the shard lock.
func (s *InMemoryMatchStore) AppendEvent(_ context.Context, matchID string, roundNumber int, e model.MatchEvent) error {
	sh := s.shard(matchID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	m, ok := sh.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	for i := range m.Rounds {
		if m.Rounds[i].Number == roundNumber {
			if err := m.Rounds[i].AddEvent(e); err != nil {
				return err
			}
			metrics.RecordEventAppended()
			return nil
		}
	}
	return fmt.Errorf("match %s round %d: %w", matchID, roundNumber, ErrRoundNotFound)
}

// Update implements MatchStore. The mutator runs on the stored aggregate
// under the shard lock; returning an error aborts the update with the
// aggregate untouched only if the mutator itself left it untouched.
func (s *InMemoryMatchStore) Update(_ context.Context, matchID string, mutate func(*model.Match) error) error {
	sh := s.shard(matchID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	m, ok := sh.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return mutate(m)
}

// SetStatus implements MatchStore.
func (s *InMemoryMatchStore) SetStatus(_ context.Context, matchID string, to model.MatchStatus) error {
	sh := s.shard(matchID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	m, ok := sh.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return m.Transition(to)
}

// SetResult implements MatchStore.
func (s *InMemoryMatchStore) SetResult(_ context.Context, matchID string, result model.MatchResult) error {
	sh := s.shard(matchID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	m, ok := sh.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	res := result
	m.Result = &res
	return nil
}

// Count implements MatchStore.
func (s *InMemoryMatchStore) Count(_ context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.matches)
		sh.mu.RUnlock()
	}
	return total
}

// cloneMatch deep-copies the aggregate so readers and writers never share
// slices.
func cloneMatch(m model.Match) model.Match {
	out := m
	out.Rounds = make([]model.Round, len(m.Rounds))
	for i, r := range m.Rounds {
		out.Rounds[i] = cloneRound(r)
	}
	out.VideoSources = append([]string(nil), m.VideoSources...)
	if m.Result != nil {
		res := *m.Result
		res.ScoreCards = append([]model.ScoreCard(nil), m.Result.ScoreCards...)
		out.Result = &res
	}
	return out
}

func cloneRound(r model.Round) model.Round {
	out := r
	out.Events = append([]model.MatchEvent(nil), r.Events...)
	out.Statistics = append([]model.MatchStatistics(nil), r.Statistics...)
	return out
}
