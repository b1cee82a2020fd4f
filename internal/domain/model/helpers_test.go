package model_test

import (
	"time"

	"github.com/fightlab/ringside/internal/domain/model"
)

func strPtr(s string) *string                                 { return &s }
func intPtr(n int) *int                                       { return &n }
func floatPtr(f float64) *float64                             { return &f }
func boolPtr(b bool) *bool                                    { return &b }
func stancePtr(s model.Stance) *model.Stance                  { return &s }
func annTypePtr(t model.AnnotationType) *model.AnnotationType { return &t }
func eventTypePtr(t model.EventType) *model.EventType         { return &t }
func strikePtr(t model.StrikeType) *model.StrikeType          { return &t }
func zonePtr(z model.TargetZone) *model.TargetZone            { return &z }
func statusPtr(s model.MatchStatus) *model.MatchStatus        { return &s }
func timePtr(t time.Time) *time.Time                          { return &t }

func validFighter(id, name string) model.Fighter {
	return model.Fighter{
		ID:       id,
		Name:     name,
		WeightKG: 72.5,
		Stance:   model.StanceOrthodox,
		ReachCM:  180,
	}
}

func validAnnotation(id string) model.Annotation {
	return model.Annotation{
		ID:          id,
		Type:        model.AnnotationArrow,
		Position:    model.Position{X: 0.5, Y: 0.5},
		Description: "clean counter left hook",
	}
}

func validClip(id string) model.VideoClip {
	return model.VideoClip{
		ID:          id,
		StartTime:   12.5,
		Duration:    6,
		CameraAngle: "main",
	}
}

func strikeEvent(id string, ts float64, fighterID string, st model.StrikeType, tz model.TargetZone, clean bool) model.MatchEvent {
	return model.MatchEvent{
		ID:        id,
		Timestamp: ts,
		Type:      model.EventStrike,
		FighterID: fighterID,
		Details: model.StrikeDetails{
			StrikeType: strikePtr(st),
			TargetZone: zonePtr(tz),
			IsClean:    boolPtr(clean),
		},
	}
}

func validMatch(id string) model.Match {
	return model.Match{
		ID:         id,
		Fighters:   [2]model.Fighter{validFighter("fighter-a", "Alexei Ivanov"), validFighter("fighter-b", "Marco Rossi")},
		Tournament: "Spring Grand Prix",
		Date:       time.Date(2025, time.April, 12, 19, 0, 0, 0, time.UTC),
		Status:     model.StatusScheduled,
	}
}
