package model_test

import (
	"testing"
	"time"

	"github.com/fightlab/ringside/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestFighterRowConversions(t *testing.T) {
	convey.Convey("Given a fighter with every column set", t, func() {
		f := validFighter("fighter-a", "Alexei Ivanov")
		f.Nationality = "Russia"
		f.Age = intPtr(28)

		convey.Convey("When converting to a row and back", func() {
			row := model.FighterToRow(f)
			back := model.FighterFromRow(row)

			convey.Convey("Then the fighter survives intact", func() {
				convey.So(row.Stance, convey.ShouldEqual, "orthodox")
				convey.So(back, convey.ShouldResemble, f)
			})

			convey.Convey("Then the age pointer is copied, not shared", func() {
				*row.Age = 99
				convey.So(*f.Age, convey.ShouldEqual, 28)
			})
		})
	})
}

func TestVideoClipFromRow(t *testing.T) {
	convey.Convey("Given a clip row with annotation rows", t, func() {
		row := model.VideoClipRow{
			ID:          "clip-1",
			EventID:     "evt-1",
			StartTime:   12.5,
			Duration:    6,
			CameraAngle: "main",
			URL:         "https://cdn.example.com/clip-1.mp4",
		}
		anns := []model.AnnotationRow{
			{ID: "ann-1", ClipID: "clip-1", Type: "arrow", PositionX: 0.5, PositionY: 0.5, Description: "counter hook", Size: floatPtr(25)},
		}

		convey.Convey("When stitching them together", func() {
			c := model.VideoClipFromRow(row, anns)

			convey.Convey("Then the clip carries its annotations", func() {
				convey.So(c.Annotations, convey.ShouldHaveLength, 1)
				convey.So(c.Annotations[0].Type, convey.ShouldEqual, model.AnnotationArrow)
				convey.So(c.Annotations[0].Position, convey.ShouldResemble, model.Position{X: 0.5, Y: 0.5})
				convey.So(*c.Annotations[0].Size, convey.ShouldEqual, 25)
				convey.So(c.Validate().Valid(), convey.ShouldBeTrue)
			})
		})
	})
}

func TestRoundFromRow(t *testing.T) {
	convey.Convey("Given a round row with unordered event rows", t, func() {
		start := time.Date(2025, time.April, 12, 19, 30, 0, 0, time.UTC)
		end := start.Add(180 * time.Second)
		row := model.RoundRow{MatchID: "match-1", Number: 1, Duration: 180, StartTime: &start, EndTime: &end}
		events := []model.MatchEventRow{
			{ID: "evt-late", MatchID: "match-1", RoundNumber: 1, Timestamp: 120, EventType: "strike", FighterID: "fighter-a",
				StrikeType: strPtr("hook"), TargetZone: strPtr("head"), IsClean: boolPtr(true), Confidence: floatPtr(0.9)},
			{ID: "evt-early", MatchID: "match-1", RoundNumber: 1, Timestamp: 15, EventType: "clinch", FighterID: "fighter-b"},
		}

		convey.Convey("When stitching them together", func() {
			rd := model.RoundFromRow(row, events)

			convey.Convey("Then events come out ordered by timestamp", func() {
				convey.So(rd.Events, convey.ShouldHaveLength, 2)
				convey.So(rd.Events[0].ID, convey.ShouldEqual, "evt-early")
				convey.So(rd.Events[1].Details.StrikeType, convey.ShouldNotBeNil)
				convey.So(*rd.Events[1].Details.StrikeType, convey.ShouldEqual, model.StrikeHook)
				convey.So(rd.Validate().Valid(), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMatchFromRow(t *testing.T) {
	convey.Convey("Given a matches row with a flattened stoppage result", t, func() {
		row := model.MatchRow{
			ID:           "match-1",
			FighterA:     "fighter-a",
			FighterB:     "fighter-b",
			Tournament:   "Spring Grand Prix",
			MatchDate:    time.Date(2025, time.April, 12, 19, 0, 0, 0, time.UTC),
			Status:       "completed",
			VideoSources: []string{"https://cdn.example.com/src-0"},
			Winner:       strPtr("fighter-a"),
			Method:       strPtr("knockout"),
			ResultRound:  intPtr(2),
			ResultTime:   floatPtr(95.5),
		}
		fighterA := validFighter("fighter-a", "Alexei Ivanov")
		fighterB := validFighter("fighter-b", "Marco Rossi")

		convey.Convey("When resolving the aggregate", func() {
			m := model.MatchFromRow(row, fighterA, fighterB, []model.Round{{Number: 1, Duration: 180}})

			convey.Convey("Then the result is reassembled", func() {
				convey.So(m.Status, convey.ShouldEqual, model.StatusCompleted)
				convey.So(m.Result, convey.ShouldNotBeNil)
				convey.So(m.Result.Method, convey.ShouldEqual, model.MethodKnockout)
				convey.So(*m.Result.Round, convey.ShouldEqual, 2)
				convey.So(m.Validate().Valid(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the result columns are absent", func() {
			row.Winner = nil
			row.Method = nil
			row.Status = "scheduled"
			m := model.MatchFromRow(row, fighterA, fighterB, nil)

			convey.Convey("Then no result is attached", func() {
				convey.So(m.Result, convey.ShouldBeNil)
				convey.So(m.Validate().Valid(), convey.ShouldBeTrue)
			})
		})
	})
}
