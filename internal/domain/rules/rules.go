// Package rules holds the declarative hard/advisory rule tables evaluated
// during entity validation.
//
// Some of the model's per-type rules make an entity invalid while others
// are advisory only (surfaced as warnings, never blocking validity). The
// asymmetry is deliberate and encoded here in one inspectable table
// instead of being scattered across validation branches.
package rules

import "github.com/fightlab/ringside/internal/domain/validation"

// Severity decides whether a failed rule produces an error or a warning.
type Severity int

const (
	// Hard failures make the subject invalid.
	Hard Severity = iota
	// Advisory failures are logged/warned and never block validity.
	Advisory
)

// Rule is a single named predicate over a subject.
type Rule[T any] struct {
	ID       string
	Severity Severity
	// Check returns ok=false with a message when the rule is violated.
	Check func(subject T) (ok bool, msg string)
}

// Evaluate folds a rule set into a validation.Result: hard violations
// become errors, advisory violations become warnings.
func Evaluate[T any](subject T, set []Rule[T]) validation.Result {
	var out validation.Result
	for _, rule := range set {
		ok, msg := rule.Check(subject)
		if ok {
			continue
		}
		switch rule.Severity {
		case Hard:
			out.AddError(msg)
		case Advisory:
			out.AddWarning(msg)
		}
	}
	return out
}
