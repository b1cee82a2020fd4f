package worker

import "github.com/fightlab/ringside/pkg/logger"

// Option configures an IngestWorker.
type Option func(*IngestWorker)

// WithName sets the worker name used in logs.
func WithName(name string) Option {
	return func(w *IngestWorker) {
		w.name = name
		w.logger = w.logger.Named(name)
	}
}

// WithMinConfidence sets the confidence threshold below which strike
// detections are dropped. Detections without a confidence value are
// never dropped by this rule.
func WithMinConfidence(threshold float64) Option {
	return func(w *IngestWorker) {
		w.minConfidence = threshold
	}
}

// WithLogger overrides the worker logger.
func WithLogger(l logger.Logger) Option {
	return func(w *IngestWorker) {
		w.logger = l
	}
}
