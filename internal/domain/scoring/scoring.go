// Package scoring derives per-fighter statistics from a round's events.
//
// Derivation is pure and performed on demand; nothing is cached. Activity
// percentage and dominance score have no authoritative formula in this
// core, so both are caller-supplied options and default to zero.
package scoring

import (
	"github.com/fightlab/ringside/internal/domain/model"
)

// Option applies a caller-supplied quantity to the computation.
type Option func(*computation)

// WithActivityPercentage sets the caller-derived activity percentage,
// clamped to [0, 100].
func WithActivityPercentage(v float64) Option {
	return func(c *computation) {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		c.activity = v
	}
}

// WithDominanceScore sets the caller-derived dominance score.
func WithDominanceScore(v float64) Option {
	return func(c *computation) {
		c.dominance = v
	}
}

type computation struct {
	activity  float64
	dominance float64
}

// Compute derives the fighter's statistics from the round's events:
// total strikes, clean hits, a per-type clean-hit tally and the point
// total from the strike scoring table.
func Compute(round model.Round, fighterID string, opts ...Option) model.MatchStatistics {
	var c computation
	for _, opt := range opts {
		opt(&c)
	}

	stats := model.MatchStatistics{
		FighterID:          fighterID,
		RoundNumber:        round.Number,
		StrikesByType:      make(map[model.StrikeType]int),
		ActivityPercentage: c.activity,
		DominanceScore:     c.dominance,
	}

	for _, e := range round.Events {
		if e.Type != model.EventStrike || e.FighterID != fighterID {
			continue
		}
		stats.TotalStrikes++
		stats.Points += e.StrikePoints()
		if e.Details.IsClean == nil || !*e.Details.IsClean {
			continue
		}
		stats.CleanHits++
		if e.Details.StrikeType != nil {
			stats.StrikesByType[*e.Details.StrikeType]++
		}
	}

	return stats
}

// ComputeBoth derives statistics for both fighters of a match in one pass
// over the round. Caller-supplied quantities apply to both entries.
func ComputeBoth(round model.Round, fighterA, fighterB string, opts ...Option) [2]model.MatchStatistics {
	return [2]model.MatchStatistics{
		Compute(round, fighterA, opts...),
		Compute(round, fighterB, opts...),
	}
}

// MatchPoints sums a fighter's points across every round of the match.
func MatchPoints(m model.Match, fighterID string) int {
	total := 0
	for _, round := range m.Rounds {
		total += Compute(round, fighterID).Points
	}
	return total
}
