// Package simfeed drives the service the way the upstream computer-vision
// pipeline would: it registers a match, adds rounds and streams randomized
// detections at it, then reads back statistics and standings.
package simfeed

import "time"

// Config holds configuration for a feed run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Rounds        int           // Number of rounds to create
	Detections    int           // Number of detections to generate
	Workers       int           // Number of concurrent submitters
	Timeout       time.Duration // HTTP request timeout
	DuplicateRate float64       // Fraction of detections re-sent with a used event id
	Verbose       bool          // Enable verbose logging
}

// Stats holds feed run statistics.
type Stats struct {
	DetectionsGenerated int
	DetectionsSubmitted int
	DetectionsAccepted  int
	DetectionsDuplicate int
	DetectionsFailed    int
	StartTime           time.Time
	Duration            time.Duration
}

// detection is the wire shape for POST /detections.
type detection struct {
	EventID     string  `json:"event_id"`
	MatchID     string  `json:"match_id"`
	RoundNumber int     `json:"round_number"`
	Timestamp   float64 `json:"timestamp"`
	FighterID   string  `json:"fighter_id"`
	Type        string  `json:"type"`
	StrikeType  string  `json:"strike_type,omitempty"`
	TargetZone  string  `json:"target_zone,omitempty"`
	IsClean     bool    `json:"is_clean"`
	Confidence  float64 `json:"confidence"`
	DetectedAt  string  `json:"detected_at"`
}

// ackResponse is the reply from detection submission.
type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}
