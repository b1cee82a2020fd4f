package model

import (
	"math"

	"github.com/fightlab/ringside/internal/domain/rules"
	"github.com/fightlab/ringside/internal/domain/validation"
)

// Annotation validation bounds.
const (
	annotationDescMaxLen = 200
	annotationMinSize    = 1.0
	annotationMaxSize    = 100.0
)

// Default look per annotation type, with a fallback for unknown types.
var (
	defaultColors = map[AnnotationType]string{
		AnnotationArrow:      "#FF0000",
		AnnotationHighlight:  "#FFFF00",
		AnnotationSlowMotion: "#00FF00",
		AnnotationCircle:     "#0000FF",
		AnnotationText:       "#FFFFFF",
	}
	defaultSizes = map[AnnotationType]float64{
		AnnotationArrow:      20,
		AnnotationHighlight:  30,
		AnnotationSlowMotion: 25,
		AnnotationCircle:     40,
		AnnotationText:       16,
	}
)

const (
	fallbackColor = "#FF0000"
	fallbackSize  = 20.0
)

// descriptionRules are the per-type description rules. text and highlight
// violations are hard; arrow, slowmotion and circle are advisory only.
// The asymmetry is existing behavior and preserved exactly.
var descriptionRules = []rules.Rule[Annotation]{
	{
		ID:       "text-min-length",
		Severity: rules.Hard,
		Check: func(a Annotation) (bool, string) {
			if a.Type != AnnotationText {
				return true, ""
			}
			return len([]rune(a.Description)) >= 3, "text annotations need a description of at least 3 characters"
		},
	},
	{
		ID:       "highlight-min-length",
		Severity: rules.Hard,
		Check: func(a Annotation) (bool, string) {
			if a.Type != AnnotationHighlight {
				return true, ""
			}
			return len([]rune(a.Description)) >= 5, "highlight annotations need a description of at least 5 characters"
		},
	},
	{
		ID:       "marker-descriptive",
		Severity: rules.Advisory,
		Check: func(a Annotation) (bool, string) {
			switch a.Type {
			case AnnotationArrow, AnnotationSlowMotion, AnnotationCircle:
				return len([]rune(a.Description)) >= 5, "short descriptions make " + string(a.Type) + " annotations hard to review"
			}
			return true, ""
		},
	},
}

// Position is a normalized point on the video frame, both components
// in [0, 1].
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Annotation is a positioned visual marker on a video clip. Annotations
// are owned exclusively by one clip and managed through its list.
type Annotation struct {
	ID          string         `json:"id"`
	Type        AnnotationType `json:"type"`
	Position    Position       `json:"position"`
	Description string         `json:"description"`
	Color       string         `json:"color,omitempty"`
	Size        *float64       `json:"size,omitempty"`
}

// AnnotationDraft is the partial input used to build an Annotation.
type AnnotationDraft struct {
	ID          *string         `json:"id,omitempty"`
	Type        *AnnotationType `json:"type,omitempty"`
	Position    *Position       `json:"position,omitempty"`
	Description *string         `json:"description,omitempty"`
	Color       *string         `json:"color,omitempty"`
	Size        *float64        `json:"size,omitempty"`
}

// Finalize fills defaults and validates the resulting annotation.
func (d AnnotationDraft) Finalize() (Annotation, validation.Result) {
	var a Annotation
	if d.ID != nil {
		a.ID = *d.ID
	}
	if d.Type != nil {
		a.Type = *d.Type
	}
	if d.Position != nil {
		a.Position = *d.Position
	}
	if d.Description != nil {
		a.Description = *d.Description
	}
	if d.Color != nil {
		a.Color = *d.Color
	}
	if d.Size != nil {
		size := *d.Size
		a.Size = &size
	}
	return a, a.Validate()
}

// Validate checks every annotation invariant. Advisory per-type rules
// surface as warnings only.
func (a Annotation) Validate() validation.Result {
	var r validation.Result
	if a.ID == "" {
		r.AddError("id is required")
	}
	if !a.Type.Valid() {
		r.AddError("type must be one of arrow, highlight, slowmotion, circle, text")
	}
	r.Merge(validation.NormalizedCoord("position.x", a.Position.X))
	r.Merge(validation.NormalizedCoord("position.y", a.Position.Y))
	r.Merge(validation.StringLength("description", a.Description, 1, annotationDescMaxLen))
	if a.Color != "" {
		r.Merge(validation.ColorFormat("color", a.Color))
	}
	if a.Size != nil {
		r.Merge(validation.NumberRange("size", *a.Size, annotationMinSize, annotationMaxSize))
	}
	r.Merge(rules.Evaluate(a, descriptionRules))
	return r
}

// DefaultColor returns the type's default color, or the fallback for
// unknown types.
func (a Annotation) DefaultColor() string {
	if c, ok := defaultColors[a.Type]; ok {
		return c
	}
	return fallbackColor
}

// DefaultSize returns the type's default size, or the fallback for
// unknown types.
func (a Annotation) DefaultSize() float64 {
	if s, ok := defaultSizes[a.Type]; ok {
		return s
	}
	return fallbackSize
}

// PixelPosition maps the normalized position onto a frame of the given
// dimensions, rounding to the nearest pixel.
func (a Annotation) PixelPosition(width, height int) (int, int) {
	return int(math.Round(a.Position.X * float64(width))),
		int(math.Round(a.Position.Y * float64(height)))
}

// Visible reports whether the annotation's pixel bounding box lies fully
// within the frame. The box is centered on the pixel position with the
// annotation's size (or the type default) as its half-extent.
func (a Annotation) Visible(width, height int) bool {
	size := a.DefaultSize()
	if a.Size != nil {
		size = *a.Size
	}
	px, py := a.PixelPosition(width, height)
	half := int(math.Round(size / 2))
	return px-half >= 0 && px+half <= width && py-half >= 0 && py+half <= height
}

// NormalizedPosition is the inverse of PixelPosition, clamped to [0, 1].
func NormalizedPosition(px, py, width, height int) Position {
	return Position{
		X: clamp01(float64(px) / float64(width)),
		Y: clamp01(float64(py) / float64(height)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
