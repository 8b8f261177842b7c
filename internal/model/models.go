package model

// Venue indicates which side of the matchup the tracked club played.
type Venue string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)

// Outcome is the binary win/loss classification used throughout the
// dashboard. Games decided in overtime or a shootout still count as a
// plain win or loss; there is no third value.
type Outcome string

const (
	OutcomeWin  Outcome = "Win"
	OutcomeLoss Outcome = "Loss"
)

// GameRecord is one normalized row of the games table. Records are created
// once per ingested game day and never mutated afterwards.
type GameRecord struct {
	SequenceNumber int     `json:"sequence_number"` // 1-based, assigned in date order
	GameID         string  `json:"game_id"`
	Date           string  `json:"date"` // YYYY-MM-DD
	OpponentAbbrev string  `json:"opponent_abbrev"`
	Venue          Venue   `json:"venue"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
	Outcome        Outcome `json:"outcome"`
}

// GoalEvent is one normalized row of the goals table. The Date field is a
// denormalized copy of the parent game's date. Assist2Name is only
// populated when Assist1Name is.
type GoalEvent struct {
	GameID       string `json:"game_id"`
	Date         string `json:"date"`
	Period       int    `json:"period"`
	TimeInPeriod string `json:"time_in_period"` // MM:SS clock string
	TeamAbbrev   string `json:"team_abbrev"`
	ScorerName   string `json:"scorer_name"`
	Assist1Name  string `json:"assist1_name,omitempty"`
	Assist2Name  string `json:"assist2_name,omitempty"`
}

// RosterEntry is one flattened roster row. Full names are not guaranteed
// unique by the upstream source.
type RosterEntry struct {
	Position string `json:"position"` // forward, defenseman, goalie
	FullName string `json:"full_name"`
}

// PointsSeriesPoint is one derived point of a player's per-game scoring
// series. GameNumber references GameRecord.SequenceNumber, not the point's
// index in the series, so games skipped for lack of goal data do not shift
// the x-axis of later points.
type PointsSeriesPoint struct {
	GameNumber int `json:"game_number"`
	Points     int `json:"points"`
}
