// Package validation provides the primitive validators shared by every
// entity in the match model.
//
// Validators are pure: they take one value, return a Result, and never
// panic or mutate their input. Failures are values, not errors, so batch
// validation can keep collecting instead of stopping at the first problem.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Bounds shared by every entity ID.
const (
	idMinLen = 1
	idMaxLen = 50
)

// idPattern is the ID format shared by every entity type.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9-_]{1,50}$`)

// hexColorPattern matches #rgb and #rrggbb.
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// rgbColorPattern matches rgb(r, g, b) with 1-3 digit components.
var rgbColorPattern = regexp.MustCompile(`^rgb\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*\)$`)

// namedColors is the accepted set of CSS-style color names.
var namedColors = map[string]struct{}{
	"red": {}, "green": {}, "blue": {}, "yellow": {}, "orange": {},
	"purple": {}, "white": {}, "black": {}, "gray": {}, "cyan": {},
	"magenta": {}, "pink": {},
}

// Result collects the outcome of one or more validators.
// Errors make the subject invalid; warnings are advisory only.
type Result struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

// Valid reports whether no errors were collected.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// AddError appends an error message.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Errorf appends a formatted error message.
func (r *Result) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddWarning appends an advisory message.
func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Warnf appends a formatted advisory message.
func (r *Result) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge folds other into r, keeping both error and warning lists.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// MergePrefixed folds other into r with every message prefixed, e.g.
// "annotations[3]: description is required".
func (r *Result) MergePrefixed(prefix string, other Result) {
	for _, e := range other.Errors {
		r.Errors = append(r.Errors, prefix+": "+e)
	}
	for _, w := range other.Warnings {
		r.Warnings = append(r.Warnings, prefix+": "+w)
	}
}

// Combine concatenates the error and warning lists of several results.
// The combined result is valid iff every input is valid.
func Combine(results ...Result) Result {
	var out Result
	for _, res := range results {
		out.Merge(res)
	}
	return out
}

// StringLength checks that s has between min and max characters inclusive.
// Length is measured in runes so multi-byte names are not penalized.
func StringLength(name, s string, min, max int) Result {
	var r Result
	n := len([]rune(s))
	if n < min || n > max {
		r.Errorf("%s must be between %d and %d characters", name, min, max)
	}
	return r
}

// NumberRange checks min <= v <= max.
func NumberRange(name string, v, min, max float64) Result {
	var r Result
	if v < min || v > max {
		r.Errorf("%s must be between %v and %v", name, min, max)
	}
	return r
}

// NormalizedCoord checks 0 <= v <= 1.
func NormalizedCoord(name string, v float64) Result {
	var r Result
	if v < 0 || v > 1 {
		r.Errorf("%s must be a normalized coordinate between 0 and 1", name)
	}
	return r
}

// IDFormat checks the ID format shared by every entity type.
func IDFormat(name, id string) Result {
	var r Result
	if !idPattern.MatchString(id) {
		r.Errorf("%s must be %d-%d characters of letters, digits, hyphen or underscore", name, idMinLen, idMaxLen)
	}
	return r
}

// UUIDFormat checks canonical UUID syntax.
func UUIDFormat(name, id string) Result {
	var r Result
	if _, err := uuid.Parse(id); err != nil {
		r.Errorf("%s must be a valid UUID", name)
	}
	return r
}

// URLFormat checks absolute http/https URL syntax.
func URLFormat(name, raw string) Result {
	var r Result
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		r.Errorf("%s must be a valid http(s) URL", name)
	}
	return r
}

// ColorFormat accepts hex (#rgb, #rrggbb), rgb(r,g,b) or a known color name.
func ColorFormat(name, c string) Result {
	var r Result
	if hexColorPattern.MatchString(c) || rgbColorPattern.MatchString(c) {
		return r
	}
	if _, ok := namedColors[strings.ToLower(c)]; ok {
		return r
	}
	r.Errorf("%s must be a hex, rgb() or named color", name)
	return r
}

// Required checks that every listed field is present and non-empty in record.
func Required(record map[string]any, fields ...string) Result {
	var r Result
	for _, f := range fields {
		v, ok := record[f]
		if !ok || v == nil {
			r.Errorf("%s is required", f)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			r.Errorf("%s is required", f)
		}
	}
	return r
}

// Check validates a single field value.
type Check func(value any) Result

// Schema maps field names to checks for ad-hoc record validation outside
// the modeled entities.
type Schema map[string]Check

// Apply runs every check against the matching record field and prefixes
// each resulting message with the field name. Missing fields are passed
// to the check as nil so "required" checks can still fire.
func (s Schema) Apply(record map[string]any) Result {
	var out Result
	for field, check := range s {
		res := check(record[field])
		out.MergePrefixed(field, res)
	}
	return out
}
