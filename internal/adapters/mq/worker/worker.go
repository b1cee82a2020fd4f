// Package worker runs the ingestion loop that turns queued detections
// into match events.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fightlab/ringside/internal/domain/model"
	"github.com/fightlab/ringside/pkg/logger"
	"github.com/fightlab/ringside/pkg/metrics"
)

// Detection abstracts what workers read off the queue.
type Detection = model.Detection

// Appender folds a finalized event into its round.
type Appender interface {
	AppendEvent(ctx context.Context, matchID string, roundNumber int, e model.MatchEvent) error
}

// Queue defines how workers receive detections.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Detection
}

// Worker processes detections until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// Default pool configuration.
const (
	defaultWorkerMultiplier = 2
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Drop reasons recorded on the detections_dropped counter.
const (
	dropReasonInvalid          = "invalid"
	dropReasonLowConfidence    = "low_confidence"
	dropReasonImpossibleTarget = "impossible_target"
	dropReasonRejected         = "rejected_event"
)

// IngestWorker implements Worker: it validates each detection, applies
// the drop rules, finalizes a match event and appends it to its round.
type IngestWorker struct {
	queue         Queue
	appender      Appender
	name          string
	minConfidence float64

	shutdown chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	logger logger.Logger
}

// signalStop closes the shutdown channel exactly once, no matter how
// many of the stop paths (pool or direct Shutdown) reach this worker.
func (w *IngestWorker) signalStop() {
	w.stopOnce.Do(func() { close(w.shutdown) })
}

// NewIngestWorker creates a worker with configuration options.
func NewIngestWorker(queue Queue, appender Appender, opts ...Option) *IngestWorker {
	w := &IngestWorker{
		queue:    queue,
		appender: appender,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run implements Worker.
func (w *IngestWorker) Run(ctx context.Context) {
	defer close(w.done)

	detections := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case d, ok := <-detections:
			if !ok {
				return
			}
			if err := w.process(ctx, d); err != nil {
				w.logger.Error(ctx, "detection processing failed",
					logger.String("event_id", d.EventID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown implements Worker.
func (w *IngestWorker) Shutdown(ctx context.Context) error {
	w.signalStop()
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process applies the drop rules and folds one detection into the match
// record. Drops are counted, logged and not treated as errors: a bad
// detection must never stall the pipeline.
func (w *IngestWorker) process(ctx context.Context, d Detection) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if res := d.Validate(); !res.Valid() {
		metrics.RecordDetectionDropped(dropReasonInvalid)
		metrics.RecordValidationFailure("detection")
		w.logger.Warn(ctx, "dropping invalid detection",
			logger.String("event_id", d.EventID),
			logger.String("errors", strings.Join(res.Errors, "; ")),
		)
		return nil
	}

	if d.Confidence != nil && *d.Confidence < w.minConfidence {
		metrics.RecordDetectionDropped(dropReasonLowConfidence)
		w.logger.Debug(ctx, "dropping low-confidence detection",
			logger.String("event_id", d.EventID),
			logger.Float64("confidence", *d.Confidence),
		)
		return nil
	}

	// Anatomically impossible strike/target pairs are detector noise.
	if d.Type == model.EventStrike && d.StrikeType != nil && d.TargetZone != nil {
		if !model.ValidStrikeTarget(model.StrikeType(*d.StrikeType), model.TargetZone(*d.TargetZone)) {
			metrics.RecordDetectionDropped(dropReasonImpossibleTarget)
			w.logger.Warn(ctx, "dropping impossible strike/target pair",
				logger.String("event_id", d.EventID),
				logger.String("strike_type", *d.StrikeType),
				logger.String("target_zone", *d.TargetZone),
			)
			return nil
		}
	}

	event, res := d.ToEventDraft().Finalize()
	if !res.Valid() {
		metrics.RecordDetectionDropped(dropReasonInvalid)
		metrics.RecordValidationFailure("match_event")
		w.logger.Warn(ctx, "dropping detection with invalid event payload",
			logger.String("event_id", d.EventID),
			logger.String("errors", strings.Join(res.Errors, "; ")),
		)
		return nil
	}
	for _, warning := range res.Warnings {
		w.logger.Warn(ctx, "event advisory", logger.String("event_id", event.ID), logger.String("warning", warning))
	}

	if err := w.appender.AppendEvent(ctx, d.MatchID, d.RoundNumber, event); err != nil {
		metrics.RecordDetectionDropped(dropReasonRejected)
		metrics.RecordWorkerError()
		return fmt.Errorf("append event %s: %w", event.ID, err)
	}

	metrics.RecordDetectionProcessed()
	return nil
}

// Pool manages a set of ingest workers reading the same queue.
type Pool struct {
	workers []*IngestWorker
	queue   Queue

	stopOnce sync.Once

	logger logger.Logger
}

// NewPool creates a pool of workerCount ingest workers. A non-positive
// count falls back to a multiple of the CPU count.
func NewPool(workerCount int, queue Queue, appender Appender, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*IngestWorker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewIngestWorker(queue, appender, workerOpts...)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop stops all workers, waiting briefly for each to drain.
func (p *Pool) Stop() {
	p.signalShutdown()

	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue and waits for the workers to finish.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	p.signalShutdown()

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}

func (p *Pool) signalShutdown() {
	p.stopOnce.Do(func() {
		for _, w := range p.workers {
			w.signalStop()
		}
	})
}
