package model

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fightlab/ringside/internal/domain/validation"
)

// standardRoundDurations are the usual sanctioned round lengths in seconds.
var standardRoundDurations = map[float64]struct{}{
	120: {}, 180: {}, 240: {},
}

// Round is an ordered container of match events bounded by a duration.
// Events are kept ascending by timestamp after every insertion; insertion
// order is not preserved. A round is owned by exactly one match and must
// be written by a single caller at a time.
type Round struct {
	Number     int               `json:"number"`
	Duration   float64           `json:"duration"`
	Events     []MatchEvent      `json:"events,omitempty"`
	Statistics []MatchStatistics `json:"statistics,omitempty"`
	StartTime  *time.Time        `json:"startTime,omitempty"`
	EndTime    *time.Time        `json:"endTime,omitempty"`
}

// RoundDraft is the partial input used to build a Round.
type RoundDraft struct {
	Number     *int              `json:"number,omitempty"`
	Duration   *float64          `json:"duration,omitempty"`
	Events     []MatchEvent      `json:"events,omitempty"`
	Statistics []MatchStatistics `json:"statistics,omitempty"`
	StartTime  *time.Time        `json:"startTime,omitempty"`
	EndTime    *time.Time        `json:"endTime,omitempty"`
}

// Finalize fills defaults, orders the events by timestamp and validates
// the resulting round.
func (d RoundDraft) Finalize() (Round, validation.Result) {
	var rd Round
	if d.Number != nil {
		rd.Number = *d.Number
	}
	if d.Duration != nil {
		rd.Duration = *d.Duration
	}
	if len(d.Events) > 0 {
		rd.Events = append(rd.Events, d.Events...)
		sortEvents(rd.Events)
	}
	if len(d.Statistics) > 0 {
		rd.Statistics = append(rd.Statistics, d.Statistics...)
	}
	if d.StartTime != nil {
		t := *d.StartTime
		rd.StartTime = &t
	}
	if d.EndTime != nil {
		t := *d.EndTime
		rd.EndTime = &t
	}
	return rd, rd.Validate()
}

// Validate checks every round invariant. Event timestamps are re-checked
// against the round duration independently of the event's own 300s bound;
// the round's duration is the authoritative window.
func (rd Round) Validate() validation.Result {
	var r validation.Result
	if rd.Number < 1 || rd.Number > MaxRounds {
		r.Errorf("number must be between 1 and %d", MaxRounds)
	}
	if rd.Duration < MinRoundDuration || rd.Duration > MaxRoundDuration {
		r.Errorf("duration must be between %v and %v seconds", MinRoundDuration, MaxRoundDuration)
	}
	if rd.StartTime != nil && rd.EndTime != nil {
		if !rd.EndTime.After(*rd.StartTime) {
			r.AddError("endTime must be after startTime")
		} else {
			actual := rd.EndTime.Sub(*rd.StartTime).Seconds()
			if math.Abs(actual-rd.Duration) > RoundTimeTolerance {
				r.Errorf("wall-clock span %.1fs deviates from duration %.1fs by more than %vs", actual, rd.Duration, RoundTimeTolerance)
			}
		}
	}
	for i, e := range rd.Events {
		if e.Timestamp < 0 || e.Timestamp > rd.Duration {
			r.Errorf("events[%d]: timestamp %.1f is outside the round duration of %.1fs", i, e.Timestamp, rd.Duration)
		}
	}
	if len(rd.Statistics) > 2 {
		r.AddError("round must not have more than 2 statistics entries")
	}
	seen := make(map[string]bool, len(rd.Statistics))
	for i, s := range rd.Statistics {
		if s.RoundNumber != rd.Number {
			r.Errorf("statistics[%d]: roundNumber %d does not match round %d", i, s.RoundNumber, rd.Number)
		}
		if seen[s.FighterID] {
			r.Errorf("statistics[%d]: fighter %s already has an entry", i, s.FighterID)
		}
		seen[s.FighterID] = true
	}
	return r
}

// AddEvent appends e and re-sorts the full event list ascending by
// timestamp. It fails without mutation when the timestamp falls outside
// [0, duration].
func (rd *Round) AddEvent(e MatchEvent) error {
	if e.Timestamp < 0 || e.Timestamp > rd.Duration {
		return fmt.Errorf("%w: %.1f not in [0, %.1f]", ErrEventOutOfWindow, e.Timestamp, rd.Duration)
	}
	rd.Events = append(rd.Events, e)
	sortEvents(rd.Events)
	return nil
}

func sortEvents(events []MatchEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
}

// EventsByType returns the round's events of the given type, in order.
func (rd Round) EventsByType(t EventType) []MatchEvent {
	var out []MatchEvent
	for _, e := range rd.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// EventsByFighter returns the round's events for the given fighter, in order.
func (rd Round) EventsByFighter(fighterID string) []MatchEvent {
	var out []MatchEvent
	for _, e := range rd.Events {
		if e.FighterID == fighterID {
			out = append(out, e)
		}
	}
	return out
}

// StrikeCount counts the fighter's strike events.
func (rd Round) StrikeCount(fighterID string) int {
	n := 0
	for _, e := range rd.Events {
		if e.Type == EventStrike && e.FighterID == fighterID {
			n++
		}
	}
	return n
}

// CleanStrikeCount counts the fighter's strikes marked clean.
func (rd Round) CleanStrikeCount(fighterID string) int {
	n := 0
	for _, e := range rd.Events {
		if e.Type == EventStrike && e.FighterID == fighterID &&
			e.Details.IsClean != nil && *e.Details.IsClean {
			n++
		}
	}
	return n
}

// Completed reports whether the round has ended.
func (rd Round) Completed() bool {
	return rd.EndTime != nil
}

// Progress is the wall-clock fraction of the round elapsed so far, in
// [0, 1]. It is meaningful only while the round is running (start set,
// end unset); it is a presentational convenience, not authoritative state.
func (rd Round) Progress() float64 {
	if rd.StartTime == nil || rd.EndTime != nil || rd.Duration <= 0 {
		return 0
	}
	elapsed := time.Since(*rd.StartTime).Seconds()
	return clamp01(elapsed / rd.Duration)
}

// RemainingTime is the wall-clock seconds left in a running round.
func (rd Round) RemainingTime() float64 {
	if rd.StartTime == nil || rd.EndTime != nil {
		return 0
	}
	remaining := rd.Duration - time.Since(*rd.StartTime).Seconds()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsStandardDuration reports whether d is a sanctioned round length.
func IsStandardDuration(d float64) bool {
	_, ok := standardRoundDurations[d]
	return ok
}
