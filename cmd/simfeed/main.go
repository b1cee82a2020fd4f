package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/fightlab/ringside/internal/simfeed"
)

// Default configuration constants.
const (
	defaultRounds        = 3
	defaultDetections    = 1000
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
	defaultDuplicateRate = 0.05
)

func main() {
	var (
		baseURL       = flag.String("url", "http://localhost:9080", "Base URL of the service")
		rounds        = flag.Int("rounds", defaultRounds, "Number of rounds to create")
		detections    = flag.Int("detections", defaultDetections, "Number of detections to generate and submit")
		workers       = flag.Int("workers", runtime.NumCPU()*2, "Number of concurrent workers")
		timeout       = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		duplicateRate = flag.Float64("duplicate-rate", defaultDuplicateRate, "Fraction of detections re-sent with a used event id")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &simfeed.Config{
		BaseURL:       *baseURL,
		Rounds:        *rounds,
		Detections:    *detections,
		Workers:       *workers,
		Timeout:       *timeout,
		DuplicateRate: *duplicateRate,
		Verbose:       *verbose,
	}

	if err := simfeed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("feed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
