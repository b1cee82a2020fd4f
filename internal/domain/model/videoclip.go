package model

import (
	"fmt"
	"strings"

	"github.com/fightlab/ringside/internal/domain/rules"
	"github.com/fightlab/ringside/internal/domain/validation"
)

// Clip length heuristics in seconds. Clips outside the key-moment range
// still validate; the range is advisory.
const (
	keyMomentMinDuration = 3.0
	keyMomentMaxDuration = 10.0
	clipSizeMBPerSecond  = 8.0 // rough estimate, not authoritative
)

// knownCameraAngles is the advisory set of expected rig positions.
var knownCameraAngles = map[string]struct{}{
	"main": {}, "side-left": {}, "side-right": {},
	"overhead": {}, "corner-red": {}, "corner-blue": {},
}

// clipDurations maps a clip type to its acceptable duration range.
var clipDurations = map[ClipType][2]float64{
	ClipHighlight:   {3, 8},
	ClipControversy: {5, 15},
	ClipSummary:     {10, 30},
}

// clipAdvisoryRules are the non-failing clip checks: non-standard length
// and unknown camera angle are surfaced as warnings only.
var clipAdvisoryRules = []rules.Rule[VideoClip]{
	{
		ID:       "key-moment-length",
		Severity: rules.Advisory,
		Check: func(c VideoClip) (bool, string) {
			ok := c.Duration >= keyMomentMinDuration && c.Duration <= keyMomentMaxDuration
			return ok, fmt.Sprintf("duration %.1fs is outside the standard key moment range of %.0f-%.0fs", c.Duration, keyMomentMinDuration, keyMomentMaxDuration)
		},
	},
	{
		ID:       "known-camera-angle",
		Severity: rules.Advisory,
		Check: func(c VideoClip) (bool, string) {
			if c.CameraAngle == "" {
				return true, "" // emptiness is a hard error elsewhere
			}
			_, ok := knownCameraAngles[strings.ToLower(c.CameraAngle)]
			return ok, "camera angle " + c.CameraAngle + " is not a known rig position"
		},
	},
}

// VideoClip is a bounded time window of footage carrying up to 20
// annotations. A clip is owned by exactly one match event.
type VideoClip struct {
	ID           string       `json:"id"`
	StartTime    float64      `json:"startTime"`
	Duration     float64      `json:"duration"`
	CameraAngle  string       `json:"cameraAngle"`
	Annotations  []Annotation `json:"annotations,omitempty"`
	URL          string       `json:"url,omitempty"`
	ThumbnailURL string       `json:"thumbnailUrl,omitempty"`
}

// VideoClipDraft is the partial input used to build a VideoClip.
type VideoClipDraft struct {
	ID           *string      `json:"id,omitempty"`
	StartTime    *float64     `json:"startTime,omitempty"`
	Duration     *float64     `json:"duration,omitempty"`
	CameraAngle  *string      `json:"cameraAngle,omitempty"`
	Annotations  []Annotation `json:"annotations,omitempty"`
	URL          *string      `json:"url,omitempty"`
	ThumbnailURL *string      `json:"thumbnailUrl,omitempty"`
}

// Finalize fills defaults and validates the resulting clip.
func (d VideoClipDraft) Finalize() (VideoClip, validation.Result) {
	var c VideoClip
	if d.ID != nil {
		c.ID = *d.ID
	}
	if d.StartTime != nil {
		c.StartTime = *d.StartTime
	}
	if d.Duration != nil {
		c.Duration = *d.Duration
	}
	if d.CameraAngle != nil {
		c.CameraAngle = *d.CameraAngle
	}
	if len(d.Annotations) > 0 {
		c.Annotations = append(c.Annotations, d.Annotations...)
	}
	if d.URL != nil {
		c.URL = *d.URL
	}
	if d.ThumbnailURL != nil {
		c.ThumbnailURL = *d.ThumbnailURL
	}
	return c, c.Validate()
}

// Validate checks every clip invariant, validating each annotation
// individually with index-prefixed error propagation.
func (c VideoClip) Validate() validation.Result {
	var r validation.Result
	if c.ID == "" {
		r.AddError("id is required")
	}
	if c.StartTime < 0 {
		r.AddError("startTime must not be negative")
	}
	if c.Duration <= 0 || c.Duration > MaxClipDuration {
		r.Errorf("duration must be greater than 0 and at most %v seconds", MaxClipDuration)
	}
	if strings.TrimSpace(c.CameraAngle) == "" {
		r.AddError("cameraAngle is required")
	}
	if c.URL != "" {
		r.Merge(validation.URLFormat("url", c.URL))
	}
	if c.ThumbnailURL != "" {
		r.Merge(validation.URLFormat("thumbnailUrl", c.ThumbnailURL))
	}
	if len(c.Annotations) > MaxAnnotations {
		r.Errorf("clip must not have more than %d annotations", MaxAnnotations)
	}
	for i, a := range c.Annotations {
		r.MergePrefixed(fmt.Sprintf("annotations[%d]", i), a.Validate())
	}
	r.Merge(rules.Evaluate(c, clipAdvisoryRules))
	return r
}

// AddAnnotation validates a and appends it. It fails when a is invalid or
// the clip already holds the maximum number of annotations.
func (c *VideoClip) AddAnnotation(a Annotation) error {
	if res := a.Validate(); !res.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidAnnotation, strings.Join(res.Errors, "; "))
	}
	if len(c.Annotations) >= MaxAnnotations {
		return ErrAnnotationLimit
	}
	c.Annotations = append(c.Annotations, a)
	return nil
}

// RemoveAnnotation removes the first annotation with the given id and
// reports whether a removal occurred.
func (c *VideoClip) RemoveAnnotation(id string) bool {
	for i, a := range c.Annotations {
		if a.ID == id {
			c.Annotations = append(c.Annotations[:i], c.Annotations[i+1:]...)
			return true
		}
	}
	return false
}

// EndTime is the clip's end offset in seconds.
func (c VideoClip) EndTime() float64 {
	return c.StartTime + c.Duration
}

// Ready reports whether the clip's footage URL has been populated.
func (c VideoClip) Ready() bool {
	return c.URL != ""
}

// EstimatedSizeMB is a rough size heuristic based on a fixed per-second
// byte rate.
func (c VideoClip) EstimatedSizeMB() float64 {
	return c.Duration * clipSizeMBPerSecond
}

// ClipID builds the deterministic clip identifier
// {matchId}-{eventId}-{lowercased cameraAngle}. It is locally
// disambiguating, not globally unique.
func ClipID(matchID, eventID, cameraAngle string) string {
	return matchID + "-" + eventID + "-" + strings.ToLower(cameraAngle)
}

// AppropriateLength reports whether duration fits the clip type's
// acceptable range. Unknown types fall back to the key moment range.
func AppropriateLength(duration float64, clipType ClipType) bool {
	bounds, ok := clipDurations[clipType]
	if !ok {
		bounds = [2]float64{keyMomentMinDuration, keyMomentMaxDuration}
	}
	return duration >= bounds[0] && duration <= bounds[1]
}
