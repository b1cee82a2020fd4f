// Package repository provides the in-memory stores behind the service:
// the match registry and the fighter standings.
package repository

import (
	"context"

	"github.com/fightlab/ringside/internal/domain/model"
)

// MatchStore is the registry of match aggregates. Implementations must
// serialize writes per match: the domain model assumes a single writer
// per aggregate at a time.
type MatchStore interface {
	// Put registers a match. Returns ErrConflict when the id exists.
	Put(ctx context.Context, m model.Match) error

	// Get returns a copy of the match. Returns ErrNotFound when unknown.
	Get(ctx context.Context, id string) (model.Match, error)

	// AddRound appends a round to the match.
	AddRound(ctx context.Context, matchID string, round model.Round) error

	// AppendEvent adds an event to the numbered round, keeping the
	// round's events ordered by timestamp.
	AppendEvent(ctx context.Context, matchID string, roundNumber int, e model.MatchEvent) error

	// Update runs a mutator on the stored aggregate under the store's
	// per-match serialization. The mutator must not retain the pointer.
	Update(ctx context.Context, matchID string, mutate func(*model.Match) error) error

	// SetStatus commits a status change after checking the transition
	// table. Returns model.ErrInvalidTransition on an illegal change.
	SetStatus(ctx context.Context, matchID string, to model.MatchStatus) error

	// SetResult attaches the terminal result to the match.
	SetResult(ctx context.Context, matchID string, result model.MatchResult) error

	// Count returns the number of registered matches.
	Count(ctx context.Context) int
}

// StandingsEntry is one row of the fighter standings.
type StandingsEntry struct {
	Rank      int    `json:"rank"`
	FighterID string `json:"fighter_id"`
	Points    int    `json:"points"`
	Matches   int    `json:"matches"`
}

// Standings accumulates fighter points across completed matches and
// serves ranked reads. Ordering is points desc, then fighter id asc, so
// ranks are deterministic.
type Standings interface {
	// RecordPoints adds a completed match's point total for a fighter.
	RecordPoints(ctx context.Context, fighterID string, points int)

	// Rank returns the fighter's current standing.
	// Returns ErrNotFound for unknown fighters.
	Rank(ctx context.Context, fighterID string) (StandingsEntry, error)

	// TopN returns the best n entries.
	TopN(ctx context.Context, n int) ([]StandingsEntry, error)

	// Count returns the number of ranked fighters.
	Count(ctx context.Context) int
}
