// Package model contains the match domain entities and their embedded
// validation: Fighter, Annotation, VideoClip, MatchEvent, Round and the
// Match aggregate root.
//
// Entities are built through a two-step draft/finalize pattern: a draft
// accepts partial input, Finalize fills defaults and runs validation, and
// only finalized values should reach the stores. Validation failures are
// returned as validation.Result values; contract violations (13th round,
// 21st annotation, out-of-window event) are errors.
package model

// Stance is a fighter's leading stance.
type Stance string

// Stance values.
const (
	StanceOrthodox Stance = "orthodox"
	StanceSouthpaw Stance = "southpaw"
)

// Valid reports enum membership.
func (s Stance) Valid() bool {
	return s == StanceOrthodox || s == StanceSouthpaw
}

// AnnotationType classifies a visual marker drawn on a clip.
type AnnotationType string

// AnnotationType values.
const (
	AnnotationArrow      AnnotationType = "arrow"
	AnnotationHighlight  AnnotationType = "highlight"
	AnnotationSlowMotion AnnotationType = "slowmotion"
	AnnotationCircle     AnnotationType = "circle"
	AnnotationText       AnnotationType = "text"
)

// Valid reports enum membership.
func (t AnnotationType) Valid() bool {
	switch t {
	case AnnotationArrow, AnnotationHighlight, AnnotationSlowMotion, AnnotationCircle, AnnotationText:
		return true
	}
	return false
}

// EventType classifies an in-round occurrence.
type EventType string

// EventType values.
const (
	EventStrike    EventType = "strike"
	EventFoul      EventType = "foul"
	EventKnockdown EventType = "knockdown"
	EventClinch    EventType = "clinch"
	EventBreak     EventType = "break"
)

// Valid reports enum membership.
func (t EventType) Valid() bool {
	switch t {
	case EventStrike, EventFoul, EventKnockdown, EventClinch, EventBreak:
		return true
	}
	return false
}

// StrikeType classifies a detected strike.
type StrikeType string

// StrikeType values.
const (
	StrikeJab      StrikeType = "jab"
	StrikeCross    StrikeType = "cross"
	StrikeHook     StrikeType = "hook"
	StrikeUppercut StrikeType = "uppercut"
	StrikeHighKick StrikeType = "high_kick"
	StrikeLowKick  StrikeType = "low_kick"
	StrikeBodyKick StrikeType = "body_kick"
	StrikeKnee     StrikeType = "knee"
	StrikeElbow    StrikeType = "elbow"
)

// Valid reports enum membership.
func (t StrikeType) Valid() bool {
	switch t {
	case StrikeJab, StrikeCross, StrikeHook, StrikeUppercut, StrikeHighKick,
		StrikeLowKick, StrikeBodyKick, StrikeKnee, StrikeElbow:
		return true
	}
	return false
}

// TargetZone is the anatomical region struck.
type TargetZone string

// TargetZone values.
const (
	ZoneHead TargetZone = "head"
	ZoneBody TargetZone = "body"
	ZoneLegs TargetZone = "legs"
	ZoneArms TargetZone = "arms"
)

// Valid reports enum membership.
func (z TargetZone) Valid() bool {
	switch z {
	case ZoneHead, ZoneBody, ZoneLegs, ZoneArms:
		return true
	}
	return false
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

// MatchStatus values.
const (
	StatusScheduled  MatchStatus = "scheduled"
	StatusInProgress MatchStatus = "in_progress"
	StatusCompleted  MatchStatus = "completed"
	StatusCancelled  MatchStatus = "cancelled"
)

// Valid reports enum membership.
func (s MatchStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// VictoryMethod is how a completed match was decided.
type VictoryMethod string

// VictoryMethod values.
const (
	MethodDecision         VictoryMethod = "decision"
	MethodKnockout         VictoryMethod = "knockout"
	MethodTechnicalKO      VictoryMethod = "technical_knockout"
	MethodDisqualification VictoryMethod = "disqualification"
)

// Valid reports enum membership.
func (m VictoryMethod) Valid() bool {
	switch m {
	case MethodDecision, MethodKnockout, MethodTechnicalKO, MethodDisqualification:
		return true
	}
	return false
}

// ClipType classifies the editorial purpose of a video clip.
type ClipType string

// ClipType values.
const (
	ClipHighlight   ClipType = "highlight"
	ClipControversy ClipType = "controversy"
	ClipSummary     ClipType = "summary"
)

// Structural limits of the aggregate.
const (
	MaxRounds          = 12
	MaxAnnotations     = 20
	MaxVideoSources    = 10
	MaxEventTimestamp  = 300.0 // seconds relative to round start
	MaxClipDuration    = 30.0  // seconds
	MinRoundDuration   = 30.0
	MaxRoundDuration   = 300.0
	RoundTimeTolerance = 10.0 // seconds between duration and wall-clock span
)
