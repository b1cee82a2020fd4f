package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/fightlab/ringside/internal/domain/validation"
)

// Confidence at or above this threshold counts as a high-confidence
// detection.
const highConfidenceThreshold = 0.8

// strikePoints scores a clean strike by type. Unknown types fall back to
// the jab value rather than erroring.
var strikePoints = map[StrikeType]int{
	StrikeHighKick: 3,
	StrikeHook:     2,
	StrikeCross:    2,
	StrikeUppercut: 2,
	StrikeBodyKick: 2,
	StrikeKnee:     2,
	StrikeElbow:    2,
	StrikeJab:      1,
	StrikeLowKick:  1,
}

const fallbackStrikePoints = 1

// strikeTargets is the anatomically possible strike/target pairs. Used by
// the ingestion pipeline to reject impossible detections; deliberately not
// part of Validate.
var strikeTargets = map[StrikeType]map[TargetZone]struct{}{
	StrikeJab:      {ZoneHead: {}, ZoneBody: {}, ZoneArms: {}},
	StrikeCross:    {ZoneHead: {}, ZoneBody: {}, ZoneArms: {}},
	StrikeHook:     {ZoneHead: {}, ZoneBody: {}, ZoneArms: {}},
	StrikeUppercut: {ZoneHead: {}, ZoneBody: {}, ZoneArms: {}},
	StrikeHighKick: {ZoneHead: {}},
	StrikeBodyKick: {ZoneBody: {}, ZoneArms: {}},
	StrikeLowKick:  {ZoneLegs: {}},
	StrikeKnee:     {ZoneHead: {}, ZoneBody: {}},
	StrikeElbow:    {ZoneHead: {}, ZoneBody: {}},
}

// StrikeDetails carries the already-computed detection fields attached to
// a strike event. Every field is optional; fields are validated only when
// populated.
type StrikeDetails struct {
	StrikeType  *StrikeType `json:"strikeType,omitempty"`
	TargetZone  *TargetZone `json:"targetZone,omitempty"`
	IsClean     *bool       `json:"isClean,omitempty"`
	ImpactForce *float64    `json:"impactForce,omitempty"`
	Confidence  *float64    `json:"confidence,omitempty"`
}

// MatchEvent is a timestamped in-round occurrence, owned by exactly one
// round and kept time-ordered by it. The timestamp is relative to the
// round start.
type MatchEvent struct {
	ID        string        `json:"id"`
	Timestamp float64       `json:"timestamp"`
	Type      EventType     `json:"type"`
	FighterID string        `json:"fighter"`
	Details   StrikeDetails `json:"details"`
	Clip      *VideoClip    `json:"videoClip,omitempty"`
}

// MatchEventDraft is the partial input used to build a MatchEvent.
type MatchEventDraft struct {
	ID        *string       `json:"id,omitempty"`
	Timestamp *float64      `json:"timestamp,omitempty"`
	Type      *EventType    `json:"type,omitempty"`
	FighterID *string       `json:"fighter,omitempty"`
	Details   StrikeDetails `json:"details"`
	Clip      *VideoClip    `json:"videoClip,omitempty"`
}

// Finalize fills defaults and validates the resulting event.
func (d MatchEventDraft) Finalize() (MatchEvent, validation.Result) {
	var e MatchEvent
	if d.ID != nil {
		e.ID = *d.ID
	}
	if d.Timestamp != nil {
		e.Timestamp = *d.Timestamp
	}
	if d.Type != nil {
		e.Type = *d.Type
	}
	if d.FighterID != nil {
		e.FighterID = *d.FighterID
	}
	e.Details = d.Details
	if d.Clip != nil {
		clip := *d.Clip
		e.Clip = &clip
	}
	return e, e.Validate()
}

// Validate checks every event invariant. Strike detail fields are checked
// only when the event is a strike, and only when populated. An attached
// clip gets a reduced inline check; full clip validation stays with
// VideoClip.Validate.
func (e MatchEvent) Validate() validation.Result {
	var r validation.Result
	if e.ID == "" {
		r.AddError("id is required")
	}
	r.Merge(validation.NumberRange("timestamp", e.Timestamp, 0, MaxEventTimestamp))
	if !e.Type.Valid() {
		r.AddError("type must be one of strike, foul, knockdown, clinch, break")
	}
	if strings.TrimSpace(e.FighterID) == "" {
		r.AddError("fighter is required")
	}
	if e.Type == EventStrike {
		r.Merge(e.Details.validate())
	}
	if e.Clip != nil {
		r.Merge(e.clipInlineCheck())
	}
	return r
}

// validate checks populated detail fields only; nothing is required.
func (d StrikeDetails) validate() validation.Result {
	var r validation.Result
	if d.StrikeType != nil && !d.StrikeType.Valid() {
		r.AddError("details.strikeType is not a known strike type")
	}
	if d.TargetZone != nil && !d.TargetZone.Valid() {
		r.AddError("details.targetZone must be one of head, body, legs, arms")
	}
	if d.ImpactForce != nil {
		r.Merge(validation.NumberRange("details.impactForce", *d.ImpactForce, 0, 100))
	}
	if d.Confidence != nil {
		r.Merge(validation.NumberRange("details.confidence", *d.Confidence, 0, 1))
	}
	return r
}

// clipInlineCheck re-validates the attached clip's essentials. This is a
// lighter-weight embedded check, intentionally distinct from
// VideoClip.Validate.
func (e MatchEvent) clipInlineCheck() validation.Result {
	var r validation.Result
	if e.Clip.ID == "" {
		r.AddError("videoClip.id is required")
	}
	if e.Clip.StartTime < 0 {
		r.AddError("videoClip.startTime must not be negative")
	}
	if e.Clip.Duration <= 0 || e.Clip.Duration > MaxClipDuration {
		r.Errorf("videoClip.duration must be greater than 0 and at most %v seconds", MaxClipDuration)
	}
	if strings.TrimSpace(e.Clip.CameraAngle) == "" {
		r.AddError("videoClip.cameraAngle is required")
	}
	return r
}

// StrikePoints scores the event: zero unless it is a clean strike,
// otherwise a fixed per-type lookup with a fallback of 1 point for
// unknown strike types.
func (e MatchEvent) StrikePoints() int {
	if e.Type != EventStrike {
		return 0
	}
	if e.Details.IsClean == nil || !*e.Details.IsClean {
		return 0
	}
	if e.Details.StrikeType == nil {
		return fallbackStrikePoints
	}
	if pts, ok := strikePoints[*e.Details.StrikeType]; ok {
		return pts
	}
	return fallbackStrikePoints
}

// HighConfidence treats a missing confidence as zero.
func (e MatchEvent) HighConfidence() bool {
	if e.Details.Confidence == nil {
		return false
	}
	return *e.Details.Confidence >= highConfidenceThreshold
}

// EventID builds the deterministic event identifier
// {matchId}-r{roundNumber}-{floor(timestamp*10)}.
func EventID(matchID string, roundNumber int, timestamp float64) string {
	return fmt.Sprintf("%s-r%d-%d", matchID, roundNumber, int(math.Floor(timestamp*10)))
}

// ValidStrikeTarget reports whether the strike type can anatomically land
// on the target zone, e.g. a low kick can only hit the legs.
func ValidStrikeTarget(strikeType StrikeType, targetZone TargetZone) bool {
	zones, ok := strikeTargets[strikeType]
	if !ok {
		return false
	}
	_, ok = zones[targetZone]
	return ok
}
