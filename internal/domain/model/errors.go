package model

import "errors"

// Sentinel kinds for contract violations. Validation failures are never
// errors; these fire only when a caller tries to corrupt aggregate state.
var (
	ErrRoundLimit        = errors.New("match already has 12 rounds")
	ErrAnnotationLimit   = errors.New("clip already has 20 annotations")
	ErrInvalidAnnotation = errors.New("invalid annotation")
	ErrEventOutOfWindow  = errors.New("event timestamp outside round duration")
	ErrInvalidTransition = errors.New("invalid status transition")
)
