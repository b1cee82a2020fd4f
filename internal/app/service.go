// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"

	eventqueue "github.com/fightlab/ringside/internal/adapters/mq/queue"
	workerpool "github.com/fightlab/ringside/internal/adapters/mq/worker"
	repository "github.com/fightlab/ringside/internal/adapters/repository"
	"github.com/fightlab/ringside/internal/domain/dedupe"
	"github.com/fightlab/ringside/internal/domain/model"
	"github.com/fightlab/ringside/internal/domain/scoring"
	"github.com/fightlab/ringside/internal/domain/validation"
	"github.com/fightlab/ringside/pkg/logger"
	"github.com/fightlab/ringside/pkg/metrics"
)

// IngestStatus is the outcome of submitting a detection.
type IngestStatus int

const (
	// IngestAccepted means the detection was queued for processing.
	IngestAccepted IngestStatus = iota
	// IngestDuplicate means the detection's event id was seen before.
	IngestDuplicate
	// IngestBackpressure means the queue was full and the detection was
	// rejected; the caller may retry.
	IngestBackpressure
)

// ErrInvalidInput wraps a validation failure so callers can distinguish
// it from infrastructure errors.
var ErrInvalidInput = errors.New("invalid input")

// Service implements the API dependencies for the match analysis system.
type Service struct {
	mu sync.RWMutex

	// Core components
	matches   repository.MatchStore
	standings repository.Standings
	deduper   dedupe.Deduper
	queue     *eventqueue.InMemoryQueue
	pool      *workerpool.Pool

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	shardCount    int
	minConfidence float64

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the detection queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the number of match store shards.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithMinConfidence sets the confidence threshold below which detections
// are dropped by the workers.
func WithMinConfidence(threshold float64) Option {
	return func(s *Service) {
		if threshold >= 0 && threshold <= 1 {
			s.minConfidence = threshold
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     100000,
		dedupeSize:    50000,
		shardCount:    8,
		minConfidence: 0.5,
		stopCh:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting match service...")

	s.matches = repository.NewInMemoryMatchStore(
		repository.WithShardCount(s.shardCount),
	)
	s.standings = repository.NewInMemoryStandings()
	s.deduper = dedupe.New(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.matches,
		workerpool.WithMinConfidence(s.minConfidence),
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "match service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Float64("minConfidence", s.minConfidence),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping match service...")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "match service stopped")
}

// CreateMatch finalizes the draft and registers the match. A missing id
// is minted. The returned validation result carries both hard errors and
// advisory warnings.
func (s *Service) CreateMatch(ctx context.Context, draft model.MatchDraft) (model.Match, validation.Result, error) {
	if draft.ID == nil {
		id := uuid.NewString()
		draft.ID = &id
	}

	m, res := draft.Finalize()
	if !res.Valid() {
		metrics.RecordValidationFailure("match")
		return model.Match{}, res, fmt.Errorf("%w: match", ErrInvalidInput)
	}

	if err := s.matches.Put(ctx, m); err != nil {
		return model.Match{}, res, err
	}

	s.logger.Info(ctx, "match registered",
		logger.String("match_id", m.ID),
		logger.String("tournament", m.Tournament),
	)
	return m, res, nil
}

// GetMatch returns a copy of the match aggregate.
func (s *Service) GetMatch(ctx context.Context, id string) (model.Match, error) {
	return s.matches.Get(ctx, id)
}

// UpdateMatch applies a partial update. Status changes go through the
// transition table; completing a match additionally requires a valid
// result (given in the draft or set earlier) and folds both fighters'
// point totals into the standings.
func (s *Service) UpdateMatch(ctx context.Context, id string, draft model.MatchDraft) (model.Match, validation.Result, error) {
	res := model.ValidateMatchUpdate(draft)
	if !res.Valid() {
		metrics.RecordValidationFailure("match_update")
		return model.Match{}, res, fmt.Errorf("%w: match update", ErrInvalidInput)
	}

	var completed bool
	err := s.matches.Update(ctx, id, func(m *model.Match) error {
		// Stage every change on a copy so a rejected draft leaves the
		// stored aggregate untouched.
		staged := *m
		if draft.Tournament != nil {
			staged.Tournament = *draft.Tournament
		}
		if draft.Date != nil {
			staged.Date = *draft.Date
		}
		if draft.VideoSources != nil {
			staged.VideoSources = append([]string(nil), draft.VideoSources...)
		}
		if draft.Result != nil {
			ids := [2]string{staged.Fighters[0].ID, staged.Fighters[1].ID}
			if rr := draft.Result.Validate(ids); !rr.Valid() {
				res.Merge(rr)
				return fmt.Errorf("%w: result", ErrInvalidInput)
			}
			result := *draft.Result
			staged.Result = &result
		}
		if draft.Status != nil && *draft.Status != staged.Status {
			if *draft.Status == model.StatusCompleted && staged.Result == nil {
				res.AddError("a completed match requires a result")
				return fmt.Errorf("%w: status", ErrInvalidInput)
			}
			if err := staged.Transition(*draft.Status); err != nil {
				return err
			}
			completed = staged.Status == model.StatusCompleted
		}
		*m = staged
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			metrics.RecordValidationFailure("match_update")
		}
		return model.Match{}, res, err
	}

	updated, err := s.matches.Get(ctx, id)
	if err != nil {
		return model.Match{}, res, err
	}

	if completed {
		s.recordStandings(ctx, updated)
	}

	return updated, res, nil
}

// recordStandings folds the completed match's point totals into the
// fighter standings.
func (s *Service) recordStandings(ctx context.Context, m model.Match) {
	for _, f := range m.Fighters {
		points := scoring.MatchPoints(m, f.ID)
		s.standings.RecordPoints(ctx, f.ID, points)
		s.logger.Info(ctx, "standings updated",
			logger.String("match_id", m.ID),
			logger.String("fighter_id", f.ID),
			logger.Int("points", points),
		)
	}
}

// AddRound finalizes the round draft and appends it to the match.
func (s *Service) AddRound(ctx context.Context, matchID string, draft model.RoundDraft) (model.Round, validation.Result, error) {
	round, res := draft.Finalize()
	if !res.Valid() {
		metrics.RecordValidationFailure("round")
		return model.Round{}, res, fmt.Errorf("%w: round", ErrInvalidInput)
	}

	if err := s.matches.AddRound(ctx, matchID, round); err != nil {
		return model.Round{}, res, err
	}
	return round, res, nil
}

// IngestDetection deduplicates the detection by event id and queues it
// for asynchronous processing. A rejected detection is unrecorded so a
// retry with the same id is not treated as a duplicate.
func (s *Service) IngestDetection(ctx context.Context, d model.Detection) (IngestStatus, error) {
	if res := d.Validate(); !res.Valid() {
		metrics.RecordValidationFailure("detection")
		return 0, fmt.Errorf("%w: detection: %v", ErrInvalidInput, res.Errors)
	}

	if s.deduper.SeenAndRecord(ctx, d.EventID) {
		metrics.RecordDetectionDuplicate()
		s.logger.Debug(ctx, "duplicate detection skipped",
			logger.String("event_id", d.EventID),
		)
		return IngestDuplicate, nil
	}

	if !s.queue.Enqueue(ctx, d) {
		s.deduper.Unrecord(ctx, d.EventID)
		metrics.RecordQueueRejection()
		return IngestBackpressure, nil
	}

	return IngestAccepted, nil
}

// RoundStatistics derives both fighters' statistics for one round of the
// match.
func (s *Service) RoundStatistics(ctx context.Context, matchID string, roundNumber int) ([2]model.MatchStatistics, error) {
	m, err := s.matches.Get(ctx, matchID)
	if err != nil {
		return [2]model.MatchStatistics{}, err
	}
	for _, round := range m.Rounds {
		if round.Number == roundNumber {
			return scoring.ComputeBoth(round, m.Fighters[0].ID, m.Fighters[1].ID), nil
		}
	}
	return [2]model.MatchStatistics{}, fmt.Errorf("match %s round %d: %w", matchID, roundNumber, repository.ErrRoundNotFound)
}

// TopStandings returns the best n standings entries.
func (s *Service) TopStandings(ctx context.Context, n int) ([]repository.StandingsEntry, error) {
	return s.standings.TopN(ctx, n)
}

// FighterRank returns the standing of one fighter.
func (s *Service) FighterRank(ctx context.Context, fighterID string) (repository.StandingsEntry, error) {
	return s.standings.Rank(ctx, fighterID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["totalMatches"] = s.matches.Count(ctx)
		stats["rankedFighters"] = s.standings.Count(ctx)

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
