package model_test

import (
	"testing"

	"github.com/fightlab/ringside/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestFighterFinalize(t *testing.T) {
	convey.Convey("Given a fully populated fighter draft", t, func() {
		draft := model.FighterDraft{
			ID:          strPtr("fighter-a"),
			Name:        strPtr("Alexei Ivanov"),
			WeightKG:    floatPtr(72.5),
			Stance:      stancePtr(model.StanceSouthpaw),
			ReachCM:     floatPtr(180),
			Nationality: strPtr("Russia"),
			Age:         intPtr(28),
		}

		convey.Convey("When finalizing", func() {
			f, res := draft.Finalize()

			convey.Convey("Then the fighter is valid and faithful to the draft", func() {
				convey.So(res.Valid(), convey.ShouldBeTrue)
				convey.So(f.ID, convey.ShouldEqual, "fighter-a")
				convey.So(f.Stance, convey.ShouldEqual, model.StanceSouthpaw)
				convey.So(f.Age, convey.ShouldNotBeNil)
				convey.So(*f.Age, convey.ShouldEqual, 28)
			})
		})
	})

	convey.Convey("Given a draft without a stance", t, func() {
		draft := model.FighterDraft{
			ID:       strPtr("fighter-b"),
			Name:     strPtr("Marco Rossi"),
			WeightKG: floatPtr(80),
			ReachCM:  floatPtr(185),
		}

		convey.Convey("When finalizing", func() {
			f, res := draft.Finalize()

			convey.Convey("Then the stance defaults to orthodox", func() {
				convey.So(res.Valid(), convey.ShouldBeTrue)
				convey.So(f.Stance, convey.ShouldEqual, model.StanceOrthodox)
			})
		})
	})

	convey.Convey("Given an empty draft", t, func() {
		f, res := model.FighterDraft{}.Finalize()

		convey.Convey("Then the fighter is returned but invalid", func() {
			convey.So(res.Valid(), convey.ShouldBeFalse)
			convey.So(f.Stance, convey.ShouldEqual, model.StanceOrthodox)
			convey.So(res.Errors, convey.ShouldContain, "id is required")
		})
	})
}

func TestFighterValidate(t *testing.T) {
	convey.Convey("Given a valid fighter", t, func() {
		f := validFighter("fighter-a", "Alexei Ivanov")

		convey.Convey("Then validation passes", func() {
			convey.So(f.Validate().Valid(), convey.ShouldBeTrue)
		})

		convey.Convey("When the name is Cyrillic with a hyphen", func() {
			f.Name = "Пётр Иванов-Смирнов"

			convey.Convey("Then validation still passes", func() {
				convey.So(f.Validate().Valid(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the name carries digits", func() {
			f.Name = "Fighter 2000"

			convey.Convey("Then validation fails on the name pattern", func() {
				res := f.Validate()
				convey.So(res.Valid(), convey.ShouldBeFalse)
				convey.So(res.Errors, convey.ShouldContain, "name may only contain letters, spaces, hyphens and apostrophes")
			})
		})

		convey.Convey("When the name is a single rune", func() {
			f.Name = "X"

			convey.Convey("Then the length check fails", func() {
				convey.So(f.Validate().Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the weight is out of range", func() {
			f.WeightKG = 200.5

			convey.Convey("Then validation fails", func() {
				res := f.Validate()
				convey.So(res.Valid(), convey.ShouldBeFalse)
				convey.So(res.Errors, convey.ShouldContain, "weight must be greater than 0 and at most 200 kg")
			})
		})

		convey.Convey("When the weight is zero", func() {
			f.WeightKG = 0

			convey.Convey("Then validation fails", func() {
				convey.So(f.Validate().Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the reach exceeds the ceiling", func() {
			f.ReachCM = 251

			convey.Convey("Then validation fails", func() {
				convey.So(f.Validate().Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the stance is unknown", func() {
			f.Stance = model.Stance("sideways")

			convey.Convey("Then validation fails", func() {
				res := f.Validate()
				convey.So(res.Errors, convey.ShouldContain, "stance must be orthodox or southpaw")
			})
		})

		convey.Convey("When the age sits on the bounds", func() {
			for _, age := range []int{16, 60} {
				f.Age = intPtr(age)
				convey.So(f.Validate().Valid(), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When the age falls outside the bounds", func() {
			for _, age := range []int{15, 61} {
				f.Age = intPtr(age)
				convey.So(f.Validate().Valid(), convey.ShouldBeFalse)
			}
		})

		convey.Convey("When the nationality is absent", func() {
			f.Nationality = ""

			convey.Convey("Then it is not required", func() {
				convey.So(f.Validate().Valid(), convey.ShouldBeTrue)
			})
		})
	})
}

func TestValidateFighterUpdate(t *testing.T) {
	convey.Convey("Given partial fighter drafts", t, func() {
		convey.Convey("Then an empty draft always passes", func() {
			convey.So(model.ValidateFighterUpdate(model.FighterDraft{}).Valid(), convey.ShouldBeTrue)
		})

		convey.Convey("Then only the fields present are checked", func() {
			res := model.ValidateFighterUpdate(model.FighterDraft{WeightKG: floatPtr(75)})
			convey.So(res.Valid(), convey.ShouldBeTrue)
		})

		convey.Convey("Then a present invalid field still fails", func() {
			res := model.ValidateFighterUpdate(model.FighterDraft{WeightKG: floatPtr(-3)})
			convey.So(res.Valid(), convey.ShouldBeFalse)
		})

		convey.Convey("Then a present invalid stance fails", func() {
			res := model.ValidateFighterUpdate(model.FighterDraft{Stance: stancePtr(model.Stance("mirrored"))})
			convey.So(res.Errors, convey.ShouldContain, "stance must be orthodox or southpaw")
		})

		convey.Convey("Then a present out-of-range age fails", func() {
			res := model.ValidateFighterUpdate(model.FighterDraft{Age: intPtr(14)})
			convey.So(res.Valid(), convey.ShouldBeFalse)
		})
	})
}
