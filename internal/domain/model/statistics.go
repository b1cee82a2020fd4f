package model

// MatchStatistics is the derived per-fighter, per-round scoring summary.
// It is never constructed independently: the scoring package recomputes it
// on demand from a round's events. ActivityPercentage and DominanceScore
// are caller-supplied quantities; this core defines their shape only.
type MatchStatistics struct {
	FighterID          string             `json:"fighterId"`
	RoundNumber        int                `json:"roundNumber"`
	TotalStrikes       int                `json:"totalStrikes"`
	CleanHits          int                `json:"cleanHits"`
	StrikesByType      map[StrikeType]int `json:"strikesByType,omitempty"`
	ActivityPercentage float64            `json:"activityPercentage"`
	DominanceScore     float64            `json:"dominanceScore"`
	Points             int                `json:"points"`
}
