// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DetectionQueueSize bounds the in-memory detection queue.
	DetectionQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingestion workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the match store.
	ShardCount int `koanf:"shard_count"`

	// MinConfidence is the threshold below which strike detections are
	// dropped by the workers.
	MinConfidence float64 `koanf:"min_confidence"`

	// MaxStandingsLimit caps GET /standings?limit.
	MaxStandingsLimit int `koanf:"max_standings_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		DetectionQueueSize: 100_000,
		WorkerCount:        runtime.NumCPU() * 2,
		DedupeSize:         50_000,
		ShardCount:         8,
		MinConfidence:      0.5,
		MaxStandingsLimit:  100,
	}
}
