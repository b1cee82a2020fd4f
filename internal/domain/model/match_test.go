package model_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fightlab/ringside/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestMatchFinalize(t *testing.T) {
	convey.Convey("Given a draft with exactly two fighters", t, func() {
		draft := model.MatchDraft{
			ID:         strPtr("match-1"),
			Fighters:   []model.Fighter{validFighter("fighter-a", "Alexei Ivanov"), validFighter("fighter-b", "Marco Rossi")},
			Tournament: strPtr("Spring Grand Prix"),
			Date:       timePtr(time.Date(2025, time.April, 12, 19, 0, 0, 0, time.UTC)),
		}

		convey.Convey("When finalizing", func() {
			m, res := draft.Finalize()

			convey.Convey("Then the match is valid and scheduled by default", func() {
				convey.So(res.Valid(), convey.ShouldBeTrue)
				convey.So(m.Status, convey.ShouldEqual, model.StatusScheduled)
			})
		})

		convey.Convey("When only one fighter is supplied", func() {
			draft.Fighters = draft.Fighters[:1]
			_, res := draft.Finalize()

			convey.Convey("Then the cardinality error fires", func() {
				convey.So(res.Valid(), convey.ShouldBeFalse)
				convey.So(res.Errors, convey.ShouldContain, "a match requires exactly 2 fighters")
			})
		})

		convey.Convey("When three fighters are supplied", func() {
			draft.Fighters = append(draft.Fighters, validFighter("fighter-c", "Samart Dee"))
			_, res := draft.Finalize()

			convey.Convey("Then the cardinality error fires", func() {
				convey.So(res.Errors, convey.ShouldContain, "a match requires exactly 2 fighters")
			})
		})
	})
}

func TestMatchValidate(t *testing.T) {
	convey.Convey("Given a valid match", t, func() {
		m := validMatch("match-1")

		convey.Convey("Then validation passes", func() {
			convey.So(m.Validate().Valid(), convey.ShouldBeTrue)
		})

		convey.Convey("When both fighters share an id", func() {
			m.Fighters[1].ID = "fighter-a"

			convey.Convey("Then validation fails", func() {
				res := m.Validate()
				convey.So(res.Errors, convey.ShouldContain, "the two fighter ids must differ")
			})
		})

		convey.Convey("When the tournament is blank", func() {
			m.Tournament = "  "

			convey.Convey("Then validation fails", func() {
				convey.So(m.Validate().Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the date is the zero instant", func() {
			m.Date = time.Time{}

			convey.Convey("Then validation fails", func() {
				convey.So(m.Validate().Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the video sources exceed the limit", func() {
			for i := 0; i <= model.MaxVideoSources; i++ {
				m.VideoSources = append(m.VideoSources, fmt.Sprintf("https://cdn.example.com/src-%d", i))
			}

			convey.Convey("Then validation fails", func() {
				res := m.Validate()
				convey.So(res.Errors, convey.ShouldContain, "match must not have more than 10 video sources")
			})
		})

		convey.Convey("When completed without a result", func() {
			m.Status = model.StatusCompleted

			convey.Convey("Then validation fails", func() {
				res := m.Validate()
				convey.So(res.Errors, convey.ShouldContain, "a completed match requires a result")
			})
		})

		convey.Convey("When completed with a decision result", func() {
			m.Status = model.StatusCompleted
			m.Result = &model.MatchResult{
				Winner: "fighter-a",
				Method: model.MethodDecision,
				ScoreCards: []model.ScoreCard{
					{Judge: "judge-1", Totals: map[string]int{"fighter-a": 29, "fighter-b": 28}},
				},
			}

			convey.Convey("Then validation passes", func() {
				convey.So(m.Validate().Valid(), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMatchResultValidate(t *testing.T) {
	fighterIDs := [2]string{"fighter-a", "fighter-b"}

	convey.Convey("Given a decision result", t, func() {
		res := model.MatchResult{Winner: "fighter-a", Method: model.MethodDecision}

		convey.Convey("Then missing score cards is the single failure", func() {
			r := res.Validate(fighterIDs)
			convey.So(r.Errors, convey.ShouldResemble, []string{"a decision result requires at least one score card"})
		})

		convey.Convey("When one score card is present", func() {
			res.ScoreCards = []model.ScoreCard{{Judge: "judge-1", Totals: map[string]int{"fighter-a": 30}}}
			convey.So(res.Validate(fighterIDs).Valid(), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a stoppage result", t, func() {
		res := model.MatchResult{Winner: "fighter-b", Method: model.MethodKnockout}

		convey.Convey("Then the finishing round and time are required", func() {
			r := res.Validate(fighterIDs)
			convey.So(r.Errors, convey.ShouldContain, "a stoppage result requires the finishing round")
			convey.So(r.Errors, convey.ShouldContain, "a stoppage result requires the finishing time")
		})

		convey.Convey("When round and time are supplied", func() {
			res.Round = intPtr(2)
			res.Time = floatPtr(95.5)
			convey.So(res.Validate(fighterIDs).Valid(), convey.ShouldBeTrue)
		})

		convey.Convey("When the finishing round is zero", func() {
			res.Round = intPtr(0)
			res.Time = floatPtr(95.5)
			convey.So(res.Validate(fighterIDs).Valid(), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given a winner outside the match", t, func() {
		res := model.MatchResult{Winner: "fighter-z", Method: model.MethodDecision,
			ScoreCards: []model.ScoreCard{{Judge: "judge-1"}}}

		convey.Convey("Then validation fails", func() {
			r := res.Validate(fighterIDs)
			convey.So(r.Errors, convey.ShouldContain, "result winner must be one of the match fighters")
		})
	})

	convey.Convey("Given an unknown victory method", t, func() {
		res := model.MatchResult{Winner: "fighter-a", Method: model.VictoryMethod("forfeit")}

		convey.Convey("Then only the enum error fires, not the stoppage checks", func() {
			r := res.Validate(fighterIDs)
			convey.So(r.Errors, convey.ShouldResemble, []string{"result method must be one of decision, knockout, technical_knockout, disqualification"})
		})
	})
}

func TestStatusTransitions(t *testing.T) {
	convey.Convey("Given the full transition matrix", t, func() {
		statuses := []model.MatchStatus{
			model.StatusScheduled, model.StatusInProgress, model.StatusCompleted, model.StatusCancelled,
		}
		legal := map[model.MatchStatus][]model.MatchStatus{
			model.StatusScheduled:  {model.StatusInProgress, model.StatusCancelled},
			model.StatusInProgress: {model.StatusCompleted, model.StatusCancelled},
		}

		convey.Convey("Then only the listed edges are allowed", func() {
			for _, from := range statuses {
				for _, to := range statuses {
					want := false
					for _, next := range legal[from] {
						if next == to {
							want = true
						}
					}
					convey.So(model.CanTransition(from, to), convey.ShouldEqual, want)
				}
			}
		})

		convey.Convey("Then terminal statuses allow nothing, not even themselves", func() {
			convey.So(model.CanTransition(model.StatusCompleted, model.StatusCompleted), convey.ShouldBeFalse)
			convey.So(model.CanTransition(model.StatusCancelled, model.StatusScheduled), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given a scheduled match", t, func() {
		m := validMatch("match-1")

		convey.Convey("When walking the happy path to completion", func() {
			convey.So(m.Transition(model.StatusInProgress), convey.ShouldBeNil)
			convey.So(m.Transition(model.StatusCompleted), convey.ShouldBeNil)
			convey.So(m.Status, convey.ShouldEqual, model.StatusCompleted)
		})

		convey.Convey("When jumping straight to completed", func() {
			err := m.Transition(model.StatusCompleted)

			convey.Convey("Then the transition is rejected without mutation", func() {
				convey.So(errors.Is(err, model.ErrInvalidTransition), convey.ShouldBeTrue)
				convey.So(m.Status, convey.ShouldEqual, model.StatusScheduled)
			})
		})
	})
}

func TestMatchRounds(t *testing.T) {
	convey.Convey("Given a match filling up with rounds", t, func() {
		m := validMatch("match-1")
		for i := 1; i <= model.MaxRounds; i++ {
			convey.So(m.AddRound(model.Round{Number: i, Duration: 180}), convey.ShouldBeNil)
		}

		convey.Convey("Then twelve rounds validate and accumulate", func() {
			convey.So(m.Validate().Valid(), convey.ShouldBeTrue)
			convey.So(m.CurrentRound(), convey.ShouldEqual, 12)
			convey.So(m.DurationMinutes(), convey.ShouldEqual, 36.0)
		})

		convey.Convey("When adding a thirteenth", func() {
			err := m.AddRound(model.Round{Number: 13, Duration: 180})

			convey.Convey("Then the limit error fires without mutation", func() {
				convey.So(errors.Is(err, model.ErrRoundLimit), convey.ShouldBeTrue)
				convey.So(m.Rounds, convey.ShouldHaveLength, model.MaxRounds)
			})
		})
	})

	convey.Convey("Given lifecycle accessors", t, func() {
		m := validMatch("match-1")
		convey.So(m.Active(), convey.ShouldBeFalse)
		convey.So(m.Finished(), convey.ShouldBeFalse)

		convey.So(m.Transition(model.StatusInProgress), convey.ShouldBeNil)
		convey.So(m.Active(), convey.ShouldBeTrue)

		convey.So(m.Transition(model.StatusCancelled), convey.ShouldBeNil)
		convey.So(m.Finished(), convey.ShouldBeTrue)
	})
}

func TestValidateMatchUpdate(t *testing.T) {
	convey.Convey("Given partial match drafts", t, func() {
		convey.Convey("Then an empty draft passes", func() {
			convey.So(model.ValidateMatchUpdate(model.MatchDraft{}).Valid(), convey.ShouldBeTrue)
		})

		convey.Convey("Then a present blank tournament fails", func() {
			res := model.ValidateMatchUpdate(model.MatchDraft{Tournament: strPtr(" ")})
			convey.So(res.Errors, convey.ShouldContain, "tournament must not be empty")
		})

		convey.Convey("Then a present unknown status fails", func() {
			res := model.ValidateMatchUpdate(model.MatchDraft{Status: statusPtr(model.MatchStatus("paused"))})
			convey.So(res.Valid(), convey.ShouldBeFalse)
		})

		convey.Convey("Then a present zero date fails", func() {
			res := model.ValidateMatchUpdate(model.MatchDraft{Date: &time.Time{}})
			convey.So(res.Errors, convey.ShouldContain, "date must be a valid instant")
		})

		convey.Convey("Then oversized video sources fail", func() {
			sources := make([]string, model.MaxVideoSources+1)
			for i := range sources {
				sources[i] = fmt.Sprintf("https://cdn.example.com/src-%d", i)
			}
			res := model.ValidateMatchUpdate(model.MatchDraft{VideoSources: sources})
			convey.So(res.Valid(), convey.ShouldBeFalse)
		})
	})
}

func TestMatchJSONRoundTrip(t *testing.T) {
	convey.Convey("Given a fully populated aggregate", t, func() {
		m := validMatch("match-1")
		clip := validClip("clip-1")
		convey.So(clip.AddAnnotation(validAnnotation("ann-1")), convey.ShouldBeNil)

		evt := strikeEvent("evt-1", 42.5, "fighter-a", model.StrikeHighKick, model.ZoneHead, true)
		evt.Details.ImpactForce = floatPtr(61.2)
		evt.Details.Confidence = floatPtr(0.93)
		evt.Clip = &clip

		rd := model.Round{Number: 1, Duration: 180}
		convey.So(rd.AddEvent(evt), convey.ShouldBeNil)
		convey.So(m.AddRound(rd), convey.ShouldBeNil)

		m.Result = &model.MatchResult{
			Winner: "fighter-a",
			Method: model.MethodKnockout,
			Round:  intPtr(1),
			Time:   floatPtr(42.5),
		}

		convey.Convey("When marshaling and unmarshaling", func() {
			data, err := json.Marshal(m)
			convey.So(err, convey.ShouldBeNil)

			var back model.Match
			convey.So(json.Unmarshal(data, &back), convey.ShouldBeNil)

			convey.Convey("Then the aggregate survives intact", func() {
				convey.So(back, convey.ShouldResemble, m)
			})

			convey.Convey("Then the wire field names are camelCase", func() {
				convey.So(string(data), convey.ShouldContainSubstring, `"videoClip"`)
				convey.So(string(data), convey.ShouldContainSubstring, `"cameraAngle"`)
				convey.So(string(data), convey.ShouldContainSubstring, `"high_kick"`)
			})
		})
	})
}
