package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fightlab/ringside/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestVideoClipFinalize(t *testing.T) {
	convey.Convey("Given a populated clip draft", t, func() {
		draft := model.VideoClipDraft{
			ID:          strPtr("clip-1"),
			StartTime:   floatPtr(42),
			Duration:    floatPtr(6),
			CameraAngle: strPtr("side-left"),
			Annotations: []model.Annotation{validAnnotation("ann-1")},
			URL:         strPtr("https://cdn.example.com/clip-1.mp4"),
		}

		convey.Convey("When finalizing", func() {
			c, res := draft.Finalize()

			convey.Convey("Then the clip is valid and carries its annotations", func() {
				convey.So(res.Valid(), convey.ShouldBeTrue)
				convey.So(c.Annotations, convey.ShouldHaveLength, 1)
				convey.So(c.Ready(), convey.ShouldBeTrue)
			})
		})
	})
}

func TestVideoClipValidate(t *testing.T) {
	convey.Convey("Given a valid clip", t, func() {
		c := validClip("clip-1")

		convey.Convey("Then validation passes without warnings", func() {
			res := c.Validate()
			convey.So(res.Valid(), convey.ShouldBeTrue)
			convey.So(res.Warnings, convey.ShouldBeEmpty)
		})

		convey.Convey("When the duration exceeds the maximum", func() {
			c.Duration = 30.5

			convey.Convey("Then validation fails", func() {
				res := c.Validate()
				convey.So(res.Valid(), convey.ShouldBeFalse)
				convey.So(res.Errors, convey.ShouldContain, "duration must be greater than 0 and at most 30 seconds")
			})
		})

		convey.Convey("When the start time is negative", func() {
			c.StartTime = -0.5

			convey.Convey("Then validation fails", func() {
				convey.So(c.Validate().Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the camera angle is blank", func() {
			c.CameraAngle = "   "

			convey.Convey("Then validation fails", func() {
				res := c.Validate()
				convey.So(res.Errors, convey.ShouldContain, "cameraAngle is required")
			})
		})

		convey.Convey("When the URL is relative", func() {
			c.URL = "/clips/clip-1.mp4"

			convey.Convey("Then validation fails", func() {
				convey.So(c.Validate().Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the duration leaves the key moment range", func() {
			c.Duration = 20

			convey.Convey("Then the clip stays valid with a warning", func() {
				res := c.Validate()
				convey.So(res.Valid(), convey.ShouldBeTrue)
				convey.So(res.Warnings, convey.ShouldContain, "duration 20.0s is outside the standard key moment range of 3-10s")
			})
		})

		convey.Convey("When the camera angle is an unknown rig position", func() {
			c.CameraAngle = "drone"

			convey.Convey("Then the clip stays valid with a warning", func() {
				res := c.Validate()
				convey.So(res.Valid(), convey.ShouldBeTrue)
				convey.So(res.Warnings, convey.ShouldContain, "camera angle drone is not a known rig position")
			})
		})

		convey.Convey("When the camera angle differs only in case", func() {
			c.CameraAngle = "Overhead"

			convey.Convey("Then the rig check is case-insensitive", func() {
				convey.So(c.Validate().Warnings, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When an annotation inside the clip is invalid", func() {
			bad := validAnnotation("ann-bad")
			bad.Position.X = 2
			c.Annotations = []model.Annotation{validAnnotation("ann-0"), bad}

			convey.Convey("Then the failure is prefixed with its index", func() {
				res := c.Validate()
				convey.So(res.Valid(), convey.ShouldBeFalse)
				convey.So(res.Errors[0], convey.ShouldStartWith, "annotations[1]:")
			})
		})
	})
}

func TestVideoClipAnnotations(t *testing.T) {
	convey.Convey("Given a clip at the annotation limit", t, func() {
		c := validClip("clip-1")
		for i := 0; i < model.MaxAnnotations; i++ {
			convey.So(c.AddAnnotation(validAnnotation(fmt.Sprintf("ann-%d", i))), convey.ShouldBeNil)
		}

		convey.Convey("Then validation still passes at exactly 20", func() {
			convey.So(c.Validate().Valid(), convey.ShouldBeTrue)
		})

		convey.Convey("When adding the 21st annotation", func() {
			err := c.AddAnnotation(validAnnotation("ann-20"))

			convey.Convey("Then the limit error fires without mutation", func() {
				convey.So(errors.Is(err, model.ErrAnnotationLimit), convey.ShouldBeTrue)
				convey.So(c.Annotations, convey.ShouldHaveLength, model.MaxAnnotations)
			})
		})

		convey.Convey("When a 21st annotation is forced in directly", func() {
			c.Annotations = append(c.Annotations, validAnnotation("ann-20"))

			convey.Convey("Then validation fails hard", func() {
				res := c.Validate()
				convey.So(res.Valid(), convey.ShouldBeFalse)
				convey.So(res.Errors, convey.ShouldContain, "clip must not have more than 20 annotations")
			})
		})
	})

	convey.Convey("Given a clip with a few annotations", t, func() {
		c := validClip("clip-1")
		convey.So(c.AddAnnotation(validAnnotation("ann-0")), convey.ShouldBeNil)
		convey.So(c.AddAnnotation(validAnnotation("ann-1")), convey.ShouldBeNil)

		convey.Convey("When adding an invalid annotation", func() {
			bad := validAnnotation("ann-bad")
			bad.Description = ""
			err := c.AddAnnotation(bad)

			convey.Convey("Then it is rejected and the list is untouched", func() {
				convey.So(errors.Is(err, model.ErrInvalidAnnotation), convey.ShouldBeTrue)
				convey.So(c.Annotations, convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When removing an existing annotation", func() {
			convey.So(c.RemoveAnnotation("ann-0"), convey.ShouldBeTrue)
			convey.So(c.Annotations, convey.ShouldHaveLength, 1)
			convey.So(c.Annotations[0].ID, convey.ShouldEqual, "ann-1")
		})

		convey.Convey("When removing an unknown annotation", func() {
			convey.So(c.RemoveAnnotation("ann-404"), convey.ShouldBeFalse)
			convey.So(c.Annotations, convey.ShouldHaveLength, 2)
		})
	})
}

func TestVideoClipDerived(t *testing.T) {
	convey.Convey("Given a clip starting at 12.5s lasting 6s", t, func() {
		c := validClip("clip-1")

		convey.Convey("Then the derived quantities follow", func() {
			convey.So(c.EndTime(), convey.ShouldEqual, 18.5)
			convey.So(c.EstimatedSizeMB(), convey.ShouldEqual, 48.0)
			convey.So(c.Ready(), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given the deterministic clip identifier", t, func() {
		convey.So(model.ClipID("match-1", "evt-7", "Corner-Red"), convey.ShouldEqual, "match-1-evt-7-corner-red")
	})

	convey.Convey("Given the per-type duration ranges", t, func() {
		convey.Convey("Then each clip type has its own bounds", func() {
			convey.So(model.AppropriateLength(3, model.ClipHighlight), convey.ShouldBeTrue)
			convey.So(model.AppropriateLength(8, model.ClipHighlight), convey.ShouldBeTrue)
			convey.So(model.AppropriateLength(8.5, model.ClipHighlight), convey.ShouldBeFalse)
			convey.So(model.AppropriateLength(15, model.ClipControversy), convey.ShouldBeTrue)
			convey.So(model.AppropriateLength(4, model.ClipControversy), convey.ShouldBeFalse)
			convey.So(model.AppropriateLength(30, model.ClipSummary), convey.ShouldBeTrue)
			convey.So(model.AppropriateLength(9, model.ClipSummary), convey.ShouldBeFalse)
		})

		convey.Convey("Then unknown types fall back to the key moment range", func() {
			convey.So(model.AppropriateLength(5, model.ClipType("recap")), convey.ShouldBeTrue)
			convey.So(model.AppropriateLength(12, model.ClipType("recap")), convey.ShouldBeFalse)
		})
	})
}
