package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/fightlab/ringside/internal/domain/validation"
)

// statusTransitions is the legal state machine: scheduled and in_progress
// can be cancelled, completed and cancelled are terminal. Legality is a
// pure lookup; the caller must check before committing a status change.
var statusTransitions = map[MatchStatus][]MatchStatus{
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// Match is the aggregate root. It binds exactly two fighters, an ordered
// sequence of rounds, video sources and an optional terminal result. It
// owns everything beneath it; fighters are referenced by id only.
type Match struct {
	ID           string       `json:"id"`
	Fighters     [2]Fighter   `json:"fighters"`
	Rounds       []Round      `json:"rounds,omitempty"`
	Tournament   string       `json:"tournament"`
	Date         time.Time    `json:"date"`
	VideoSources []string     `json:"videoSources,omitempty"`
	Status       MatchStatus  `json:"status"`
	Result       *MatchResult `json:"result,omitempty"`
}

// MatchDraft is the partial input used to build a Match.
type MatchDraft struct {
	ID           *string      `json:"id,omitempty"`
	Fighters     []Fighter    `json:"fighters,omitempty"`
	Rounds       []Round      `json:"rounds,omitempty"`
	Tournament   *string      `json:"tournament,omitempty"`
	Date         *time.Time   `json:"date,omitempty"`
	VideoSources []string     `json:"videoSources,omitempty"`
	Status       *MatchStatus `json:"status,omitempty"`
	Result       *MatchResult `json:"result,omitempty"`
}

// Finalize fills defaults (status scheduled) and validates the resulting
// match.
func (d MatchDraft) Finalize() (Match, validation.Result) {
	m := Match{Status: StatusScheduled}
	if d.ID != nil {
		m.ID = *d.ID
	}
	for i := 0; i < len(d.Fighters) && i < 2; i++ {
		m.Fighters[i] = d.Fighters[i]
	}
	if len(d.Rounds) > 0 {
		m.Rounds = append(m.Rounds, d.Rounds...)
	}
	if d.Tournament != nil {
		m.Tournament = *d.Tournament
	}
	if d.Date != nil {
		m.Date = *d.Date
	}
	if len(d.VideoSources) > 0 {
		m.VideoSources = append(m.VideoSources, d.VideoSources...)
	}
	if d.Status != nil {
		m.Status = *d.Status
	}
	if d.Result != nil {
		res := *d.Result
		m.Result = &res
	}
	res := m.Validate()
	if len(d.Fighters) != 2 {
		res.AddError("a match requires exactly 2 fighters")
	}
	return m, res
}

// Validate checks every match invariant, delegating to the result's own
// validation when a result is present.
func (m Match) Validate() validation.Result {
	var r validation.Result
	if m.ID == "" {
		r.AddError("id is required")
	}
	idA, idB := m.Fighters[0].ID, m.Fighters[1].ID
	if strings.TrimSpace(idA) == "" || strings.TrimSpace(idB) == "" {
		r.AddError("both fighters need a non-empty id")
	} else if idA == idB {
		r.AddError("the two fighter ids must differ")
	}
	if strings.TrimSpace(m.Tournament) == "" {
		r.AddError("tournament is required")
	}
	if m.Date.IsZero() {
		r.AddError("date is required")
	}
	if !m.Status.Valid() {
		r.AddError("status must be one of scheduled, in_progress, completed, cancelled")
	}
	if len(m.Rounds) > MaxRounds {
		r.Errorf("match must not have more than %d rounds", MaxRounds)
	}
	if len(m.VideoSources) > MaxVideoSources {
		r.Errorf("match must not have more than %d video sources", MaxVideoSources)
	}
	if m.Status == StatusCompleted && m.Result == nil {
		r.AddError("a completed match requires a result")
	}
	if m.Result != nil {
		r.Merge(m.Result.Validate([2]string{idA, idB}))
	}
	return r
}

// ValidateMatchUpdate checks only the fields present in the draft
// (partial-update semantics).
func ValidateMatchUpdate(d MatchDraft) validation.Result {
	var r validation.Result
	if d.ID != nil {
		r.Merge(validation.IDFormat("id", *d.ID))
	}
	if d.Status != nil && !d.Status.Valid() {
		r.AddError("status must be one of scheduled, in_progress, completed, cancelled")
	}
	if d.Date != nil && d.Date.IsZero() {
		r.AddError("date must be a valid instant")
	}
	if d.Tournament != nil && strings.TrimSpace(*d.Tournament) == "" {
		r.AddError("tournament must not be empty")
	}
	if d.VideoSources != nil && len(d.VideoSources) > MaxVideoSources {
		r.Errorf("match must not have more than %d video sources", MaxVideoSources)
	}
	return r
}

// AddRound appends r. It fails without mutation when the match already
// holds the maximum number of rounds. Round numbering consistency is the
// caller's responsibility.
func (m *Match) AddRound(r Round) error {
	if len(m.Rounds) >= MaxRounds {
		return ErrRoundLimit
	}
	m.Rounds = append(m.Rounds, r)
	return nil
}

// CurrentRound is the number of rounds recorded so far.
func (m Match) CurrentRound() int {
	return len(m.Rounds)
}

// Active reports whether the match is being fought right now.
func (m Match) Active() bool {
	return m.Status == StatusInProgress
}

// Finished reports whether the match reached a terminal status.
func (m Match) Finished() bool {
	return m.Status == StatusCompleted || m.Status == StatusCancelled
}

// DurationMinutes is the sum of round durations in minutes.
func (m Match) DurationMinutes() float64 {
	total := 0.0
	for _, r := range m.Rounds {
		total += r.Duration
	}
	return total / 60
}

// CanTransition reports whether the status change is legal.
func CanTransition(from, to MatchStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the match to the new status after checking the
// transition table.
func (m *Match) Transition(to MatchStatus) error {
	if !CanTransition(m.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.Status, to)
	}
	m.Status = to
	return nil
}
