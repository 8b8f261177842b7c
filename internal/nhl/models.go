package nhl

// Typed shapes for the three api-web.nhle.com resources the service reads.
// Only the fields the pipeline consumes are declared; everything else in the
// payloads is ignored by the decoder.

// LocalizedString is api-web's wrapper for translatable text, e.g.
// {"default": "Connor"}.
type LocalizedString struct {
	Default string `json:"default"`
}

// ScheduleResponse is the club-schedule-season payload: an ordered list of
// game summaries for the whole season (preseason included).
type ScheduleResponse struct {
	Games []ScheduleGame `json:"games"`
}

// ScheduleGame carries the fields of a schedule entry the resolver needs.
type ScheduleGame struct {
	ID       int64  `json:"id"`
	GameDate string `json:"gameDate"` // YYYY-MM-DD
}

// ScoreResponse is the score/{date} payload: zero or more games played on
// that calendar date, league-wide.
type ScoreResponse struct {
	Games []ScoreGame `json:"games"`
}

// TeamSide is one side of a matchup in a score summary. Score is a pointer
// so an absent field can be told apart from a shutout.
type TeamSide struct {
	Abbrev string `json:"abbrev"`
	Score  *int   `json:"score"`
}

// ScoreGame is one game inside a score/{date} response, including its
// nested goal list.
type ScoreGame struct {
	ID       int64       `json:"id"`
	GameDate string      `json:"gameDate"`
	AwayTeam TeamSide    `json:"awayTeam"`
	HomeTeam TeamSide    `json:"homeTeam"`
	Goals    []ScoreGoal `json:"goals"`
}

// ScoreGoal is a single goal entry. Assists holds 0-2 entries in scoring
// order; the first-listed assist is the primary one.
type ScoreGoal struct {
	Period       int             `json:"period"`
	TimeInPeriod string          `json:"timeInPeriod"`
	TeamAbbrev   string          `json:"teamAbbrev"`
	FirstName    LocalizedString `json:"firstName"`
	LastName     LocalizedString `json:"lastName"`
	Assists      []ScoreAssist   `json:"assists"`
}

// ScoreAssist is one assist credit on a goal.
type ScoreAssist struct {
	Name LocalizedString `json:"name"`
}

// RosterResponse is the roster payload: position-group name (plural, e.g.
// "forwards") to the ordered players in that group.
type RosterResponse map[string][]RosterPlayer

// RosterPlayer is one player entry inside a roster position group.
type RosterPlayer struct {
	FirstName LocalizedString `json:"firstName"`
	LastName  LocalizedString `json:"lastName"`
}
