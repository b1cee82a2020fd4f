package model

import "time"

// Flat row shapes exchanged with the persistence collaborator. Rows use
// snake_case field names and scalar columns only; the conversions below
// are the sole contract between storage and the entity model. Ownership
// edges (round -> events, clip -> annotations) arrive as separate row sets
// and are stitched together by the caller.

// FighterRow mirrors a fighters table row.
type FighterRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	WeightKG    float64 `json:"weight_kg"`
	Stance      string  `json:"stance"`
	ReachCM     float64 `json:"reach_cm"`
	Nationality string  `json:"nationality,omitempty"`
	Age         *int    `json:"age,omitempty"`
}

// FighterFromRow maps a storage row into a Fighter.
func FighterFromRow(row FighterRow) Fighter {
	f := Fighter{
		ID:          row.ID,
		Name:        row.Name,
		WeightKG:    row.WeightKG,
		Stance:      Stance(row.Stance),
		ReachCM:     row.ReachCM,
		Nationality: row.Nationality,
	}
	if row.Age != nil {
		age := *row.Age
		f.Age = &age
	}
	return f
}

// FighterToRow maps a Fighter into its storage row.
func FighterToRow(f Fighter) FighterRow {
	row := FighterRow{
		ID:          f.ID,
		Name:        f.Name,
		WeightKG:    f.WeightKG,
		Stance:      string(f.Stance),
		ReachCM:     f.ReachCM,
		Nationality: f.Nationality,
	}
	if f.Age != nil {
		age := *f.Age
		row.Age = &age
	}
	return row
}

// AnnotationRow mirrors an annotations table row; clip_id records the
// owning clip.
type AnnotationRow struct {
	ID          string   `json:"id"`
	ClipID      string   `json:"clip_id"`
	Type        string   `json:"type"`
	PositionX   float64  `json:"position_x"`
	PositionY   float64  `json:"position_y"`
	Description string   `json:"description"`
	Color       string   `json:"color,omitempty"`
	Size        *float64 `json:"size,omitempty"`
}

// AnnotationFromRow maps a storage row into an Annotation.
func AnnotationFromRow(row AnnotationRow) Annotation {
	a := Annotation{
		ID:          row.ID,
		Type:        AnnotationType(row.Type),
		Position:    Position{X: row.PositionX, Y: row.PositionY},
		Description: row.Description,
		Color:       row.Color,
	}
	if row.Size != nil {
		size := *row.Size
		a.Size = &size
	}
	return a
}

// VideoClipRow mirrors a video_clips table row; event_id records the
// owning event.
type VideoClipRow struct {
	ID           string  `json:"id"`
	EventID      string  `json:"event_id"`
	StartTime    float64 `json:"start_time"`
	Duration     float64 `json:"duration"`
	CameraAngle  string  `json:"camera_angle"`
	URL          string  `json:"url,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
}

// VideoClipFromRow maps a storage row and its annotation rows into a
// VideoClip.
func VideoClipFromRow(row VideoClipRow, annotations []AnnotationRow) VideoClip {
	c := VideoClip{
		ID:           row.ID,
		StartTime:    row.StartTime,
		Duration:     row.Duration,
		CameraAngle:  row.CameraAngle,
		URL:          row.URL,
		ThumbnailURL: row.ThumbnailURL,
	}
	for _, ar := range annotations {
		c.Annotations = append(c.Annotations, AnnotationFromRow(ar))
	}
	return c
}

// MatchEventRow mirrors a match_events table row; match_id and
// round_number record the owning round.
type MatchEventRow struct {
	ID          string   `json:"id"`
	MatchID     string   `json:"match_id"`
	RoundNumber int      `json:"round_number"`
	Timestamp   float64  `json:"timestamp"`
	EventType   string   `json:"event_type"`
	FighterID   string   `json:"fighter_id"`
	StrikeType  *string  `json:"strike_type,omitempty"`
	TargetZone  *string  `json:"target_zone,omitempty"`
	IsClean     *bool    `json:"is_clean,omitempty"`
	ImpactForce *float64 `json:"impact_force,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// MatchEventFromRow maps a storage row into a MatchEvent. The clip, when
// one exists, is attached by the caller from its own row set.
func MatchEventFromRow(row MatchEventRow) MatchEvent {
	e := MatchEvent{
		ID:        row.ID,
		Timestamp: row.Timestamp,
		Type:      EventType(row.EventType),
		FighterID: row.FighterID,
	}
	if row.StrikeType != nil {
		st := StrikeType(*row.StrikeType)
		e.Details.StrikeType = &st
	}
	if row.TargetZone != nil {
		tz := TargetZone(*row.TargetZone)
		e.Details.TargetZone = &tz
	}
	if row.IsClean != nil {
		clean := *row.IsClean
		e.Details.IsClean = &clean
	}
	if row.ImpactForce != nil {
		force := *row.ImpactForce
		e.Details.ImpactForce = &force
	}
	if row.Confidence != nil {
		conf := *row.Confidence
		e.Details.Confidence = &conf
	}
	return e
}

// RoundRow mirrors a rounds table row; match_id records the owning match.
type RoundRow struct {
	MatchID   string     `json:"match_id"`
	Number    int        `json:"number"`
	Duration  float64    `json:"duration"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// RoundFromRow maps a storage row and its event rows into a Round, with
// events ordered by timestamp.
func RoundFromRow(row RoundRow, events []MatchEventRow) Round {
	rd := Round{
		Number:   row.Number,
		Duration: row.Duration,
	}
	if row.StartTime != nil {
		t := *row.StartTime
		rd.StartTime = &t
	}
	if row.EndTime != nil {
		t := *row.EndTime
		rd.EndTime = &t
	}
	for _, er := range events {
		rd.Events = append(rd.Events, MatchEventFromRow(er))
	}
	sortEvents(rd.Events)
	return rd
}

// MatchRow mirrors a matches table row. fighter_a and fighter_b are
// fighter id references; result columns are flattened inline.
type MatchRow struct {
	ID           string    `json:"id"`
	FighterA     string    `json:"fighter_a"`
	FighterB     string    `json:"fighter_b"`
	Tournament   string    `json:"tournament"`
	MatchDate    time.Time `json:"match_date"`
	Status       string    `json:"status"`
	VideoSources []string  `json:"video_sources,omitempty"`
	Winner       *string   `json:"winner,omitempty"`
	Method       *string   `json:"method,omitempty"`
	ResultRound  *int      `json:"result_round,omitempty"`
	ResultTime   *float64  `json:"result_time,omitempty"`
}

// MatchFromRow maps a matches row, its resolved fighters and its round
// rows into the Match aggregate. The caller resolves fighter_a/fighter_b
// to full fighter rows beforehand.
func MatchFromRow(row MatchRow, fighterA, fighterB Fighter, rounds []Round) Match {
	m := Match{
		ID:           row.ID,
		Fighters:     [2]Fighter{fighterA, fighterB},
		Tournament:   row.Tournament,
		Date:         row.MatchDate,
		Status:       MatchStatus(row.Status),
		VideoSources: append([]string(nil), row.VideoSources...),
		Rounds:       append([]Round(nil), rounds...),
	}
	if row.Winner != nil && row.Method != nil {
		res := MatchResult{
			Winner: *row.Winner,
			Method: VictoryMethod(*row.Method),
		}
		if row.ResultRound != nil {
			n := *row.ResultRound
			res.Round = &n
		}
		if row.ResultTime != nil {
			t := *row.ResultTime
			res.Time = &t
		}
		m.Result = &res
	}
	return m
}
