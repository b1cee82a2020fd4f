package simfeed

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// roundDurationSeconds matches the standard three-minute round; generated
// timestamps stay inside it.
const roundDurationSeconds = 180.0

const randomFloatDivisor = 1_000_000

// strikeZones pairs each strike with the target zones a detector could
// plausibly report for it.
var strikeZones = map[string][]string{
	"jab":       {"head", "body"},
	"cross":     {"head", "body"},
	"hook":      {"head", "body"},
	"uppercut":  {"head", "body"},
	"high_kick": {"head"},
	"low_kick":  {"legs"},
	"body_kick": {"body"},
	"knee":      {"head", "body"},
	"elbow":     {"head", "body"},
}

var strikeNames = []string{
	"jab", "cross", "hook", "uppercut", "high_kick",
	"low_kick", "body_kick", "knee", "elbow",
}

// randomFloat returns a float64 in [0, 1) using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateDetections builds the full batch up front: random strikes from
// alternating fighters, spread uniformly over the configured rounds.
func generateDetections(cfg *Config, matchID string, fighterIDs [2]string) []detection {
	out := make([]detection, cfg.Detections)
	for i := range out {
		out[i] = generateSingleDetection(cfg, matchID, fighterIDs[randomIndex(2)])
	}
	return out
}

func generateSingleDetection(cfg *Config, matchID, fighterID string) detection {
	strike := strikeNames[randomIndex(len(strikeNames))]
	zones := strikeZones[strike]

	return detection{
		EventID:     uuid.New().String(),
		MatchID:     matchID,
		RoundNumber: 1 + randomIndex(cfg.Rounds),
		Timestamp:   randomFloat() * roundDurationSeconds,
		FighterID:   fighterID,
		Type:        "strike",
		StrikeType:  strike,
		TargetZone:  zones[randomIndex(len(zones))],
		IsClean:     randomFloat() < 0.6,
		Confidence:  0.5 + randomFloat()*0.5,
		DetectedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}
