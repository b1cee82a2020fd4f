package model

import (
	"strings"
	"time"

	"github.com/fightlab/ringside/internal/domain/validation"
)

// Detection is a raw occurrence pushed by an upstream computer-vision
// service. Strike classification, target zone, cleanliness, impact force
// and confidence arrive already computed; this core never infers them.
// Detections flow through the ingestion queue and become match events.
type Detection struct {
	EventID     string     `json:"event_id"`
	MatchID     string     `json:"match_id"`
	RoundNumber int        `json:"round_number"`
	Timestamp   float64    `json:"timestamp"`
	FighterID   string     `json:"fighter_id"`
	Type        EventType  `json:"type"`
	StrikeType  *string    `json:"strike_type,omitempty"`
	TargetZone  *string    `json:"target_zone,omitempty"`
	IsClean     *bool      `json:"is_clean,omitempty"`
	ImpactForce *float64   `json:"impact_force,omitempty"`
	Confidence  *float64   `json:"confidence,omitempty"`
	DetectedAt  time.Time  `json:"detected_at"`
	Clip        *VideoClip `json:"video_clip,omitempty"`
}

// Validate checks the detection envelope before it is queued. The event
// payload itself is validated again at ingestion time when the MatchEvent
// is finalized.
func (d Detection) Validate() validation.Result {
	var r validation.Result
	if strings.TrimSpace(d.EventID) == "" {
		r.AddError("event_id is required")
	}
	if strings.TrimSpace(d.MatchID) == "" {
		r.AddError("match_id is required")
	}
	if d.RoundNumber < 1 || d.RoundNumber > MaxRounds {
		r.Errorf("round_number must be between 1 and %d", MaxRounds)
	}
	r.Merge(validation.NumberRange("timestamp", d.Timestamp, 0, MaxEventTimestamp))
	if strings.TrimSpace(d.FighterID) == "" {
		r.AddError("fighter_id is required")
	}
	if !d.Type.Valid() {
		r.AddError("type must be one of strike, foul, knockdown, clinch, break")
	}
	return r
}

// ToEventDraft projects the detection into a match event draft with the
// deterministic event id derived from its coordinates.
func (d Detection) ToEventDraft() MatchEventDraft {
	id := EventID(d.MatchID, d.RoundNumber, d.Timestamp)
	ts := d.Timestamp
	typ := d.Type
	fighter := d.FighterID
	draft := MatchEventDraft{
		ID:        &id,
		Timestamp: &ts,
		Type:      &typ,
		FighterID: &fighter,
		Clip:      d.Clip,
	}
	if d.StrikeType != nil {
		st := StrikeType(*d.StrikeType)
		draft.Details.StrikeType = &st
	}
	if d.TargetZone != nil {
		tz := TargetZone(*d.TargetZone)
		draft.Details.TargetZone = &tz
	}
	if d.IsClean != nil {
		clean := *d.IsClean
		draft.Details.IsClean = &clean
	}
	if d.ImpactForce != nil {
		force := *d.ImpactForce
		draft.Details.ImpactForce = &force
	}
	if d.Confidence != nil {
		conf := *d.Confidence
		draft.Details.Confidence = &conf
	}
	return draft
}
