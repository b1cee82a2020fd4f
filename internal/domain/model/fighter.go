package model

import (
	"regexp"

	"github.com/fightlab/ringside/internal/domain/validation"
)

// Fighter validation bounds.
const (
	fighterNameMinLen   = 2
	fighterNameMaxLen   = 100
	fighterMaxWeightKG  = 200.0
	fighterMaxReachCM   = 250.0
	fighterMinAge       = 16
	fighterMaxAge       = 60
	fighterMaxNationLen = 50
)

// fighterNamePattern allows Latin and Cyrillic letters, spaces, hyphens
// and apostrophes.
var fighterNamePattern = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё' -]+$`)

// Fighter is a participant profile. It is referenced by value (its ID)
// from events and results; it is never owned by the aggregate.
type Fighter struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	WeightKG    float64 `json:"weight"`
	Stance      Stance  `json:"stance"`
	ReachCM     float64 `json:"reach"`
	Nationality string  `json:"nationality,omitempty"`
	Age         *int    `json:"age,omitempty"`
}

// FighterDraft is the partial input used to build a Fighter. Unset fields
// receive defaults at Finalize time; a zero-filled fighter is intentionally
// invalid until populated.
type FighterDraft struct {
	ID          *string  `json:"id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	WeightKG    *float64 `json:"weight,omitempty"`
	Stance      *Stance  `json:"stance,omitempty"`
	ReachCM     *float64 `json:"reach,omitempty"`
	Nationality *string  `json:"nationality,omitempty"`
	Age         *int     `json:"age,omitempty"`
}

// Finalize fills defaults and validates the resulting fighter. The fighter
// is returned even when invalid so callers can inspect it, but only a
// valid result should be trusted.
func (d FighterDraft) Finalize() (Fighter, validation.Result) {
	f := Fighter{Stance: StanceOrthodox}
	if d.ID != nil {
		f.ID = *d.ID
	}
	if d.Name != nil {
		f.Name = *d.Name
	}
	if d.WeightKG != nil {
		f.WeightKG = *d.WeightKG
	}
	if d.Stance != nil {
		f.Stance = *d.Stance
	}
	if d.ReachCM != nil {
		f.ReachCM = *d.ReachCM
	}
	if d.Nationality != nil {
		f.Nationality = *d.Nationality
	}
	if d.Age != nil {
		age := *d.Age
		f.Age = &age
	}
	return f, f.Validate()
}

// Validate checks every fighter invariant. It never panics.
func (f Fighter) Validate() validation.Result {
	var r validation.Result
	if f.ID == "" {
		r.AddError("id is required")
	}
	r.Merge(validation.StringLength("name", f.Name, fighterNameMinLen, fighterNameMaxLen))
	if f.Name != "" && !fighterNamePattern.MatchString(f.Name) {
		r.AddError("name may only contain letters, spaces, hyphens and apostrophes")
	}
	if f.WeightKG <= 0 || f.WeightKG > fighterMaxWeightKG {
		r.Errorf("weight must be greater than 0 and at most %v kg", fighterMaxWeightKG)
	}
	if !f.Stance.Valid() {
		r.AddError("stance must be orthodox or southpaw")
	}
	if f.ReachCM <= 0 || f.ReachCM > fighterMaxReachCM {
		r.Errorf("reach must be greater than 0 and at most %v cm", fighterMaxReachCM)
	}
	if f.Age != nil {
		r.Merge(validation.NumberRange("age", float64(*f.Age), fighterMinAge, fighterMaxAge))
	}
	if f.Nationality != "" {
		r.Merge(validation.StringLength("nationality", f.Nationality, 1, fighterMaxNationLen))
	}
	return r
}

// ValidateFighterUpdate checks only the fields present in the draft.
// Absent fields are not checked (partial-update semantics).
func ValidateFighterUpdate(d FighterDraft) validation.Result {
	var r validation.Result
	if d.ID != nil {
		r.Merge(validation.IDFormat("id", *d.ID))
	}
	if d.Name != nil {
		r.Merge(validation.StringLength("name", *d.Name, fighterNameMinLen, fighterNameMaxLen))
		if *d.Name != "" && !fighterNamePattern.MatchString(*d.Name) {
			r.AddError("name may only contain letters, spaces, hyphens and apostrophes")
		}
	}
	if d.WeightKG != nil && (*d.WeightKG <= 0 || *d.WeightKG > fighterMaxWeightKG) {
		r.Errorf("weight must be greater than 0 and at most %v kg", fighterMaxWeightKG)
	}
	if d.Stance != nil && !d.Stance.Valid() {
		r.AddError("stance must be orthodox or southpaw")
	}
	if d.ReachCM != nil && (*d.ReachCM <= 0 || *d.ReachCM > fighterMaxReachCM) {
		r.Errorf("reach must be greater than 0 and at most %v cm", fighterMaxReachCM)
	}
	if d.Age != nil {
		r.Merge(validation.NumberRange("age", float64(*d.Age), fighterMinAge, fighterMaxAge))
	}
	if d.Nationality != nil && *d.Nationality != "" {
		r.Merge(validation.StringLength("nationality", *d.Nationality, 1, fighterMaxNationLen))
	}
	return r
}
