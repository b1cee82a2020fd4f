package model

import "github.com/fightlab/ringside/internal/domain/validation"

// ScoreCard is one judge's totals for a finished match, keyed by fighter id.
type ScoreCard struct {
	Judge  string         `json:"judge"`
	Totals map[string]int `json:"totals"`
}

// MatchResult is the terminal outcome embedded in a completed match.
type MatchResult struct {
	Winner     string        `json:"winner"`
	Method     VictoryMethod `json:"method"`
	Round      *int          `json:"round,omitempty"`
	Time       *float64      `json:"time,omitempty"`
	ScoreCards []ScoreCard   `json:"scoreCards,omitempty"`
}

// Validate checks the result against the two fighter ids of its match.
// A stoppage (any method other than decision) needs the round and time of
// the finish; a decision needs at least one score card.
func (res MatchResult) Validate(fighterIDs [2]string) validation.Result {
	var r validation.Result
	if res.Winner != fighterIDs[0] && res.Winner != fighterIDs[1] {
		r.AddError("result winner must be one of the match fighters")
	}
	if !res.Method.Valid() {
		r.AddError("result method must be one of decision, knockout, technical_knockout, disqualification")
	}
	if res.Method == MethodDecision {
		if len(res.ScoreCards) == 0 {
			r.AddError("a decision result requires at least one score card")
		}
	} else if res.Method.Valid() {
		if res.Round == nil || *res.Round < 1 {
			r.AddError("a stoppage result requires the finishing round")
		}
		if res.Time == nil || *res.Time < 0 {
			r.AddError("a stoppage result requires the finishing time")
		}
	}
	return r
}
