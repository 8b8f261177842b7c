package pipeline

import (
	"strconv"

	"github.com/fortuna/rinkside/internal/model"
	"github.com/fortuna/rinkside/internal/nhl"
)

// SelectTrackedGame scans a score-day payload for the game involving the
// tracked club. A nil return means the club did not play that date
// (postponed or rescheduled) and the date is simply skipped.
func SelectTrackedGame(scores *nhl.ScoreResponse, trackedAbbrev string) *nhl.ScoreGame {
	for i := range scores.Games {
		g := &scores.Games[i]
		if g.AwayTeam.Abbrev == trackedAbbrev || g.HomeTeam.Abbrev == trackedAbbrev {
			return g
		}
	}
	return nil
}

// BuildGameRecord maps one raw game to a normalized record. The venue is
// decided by comparing the tracked abbreviation against the away side;
// goals for/against map from the matching score fields. Outcome is the
// source's binary classification: win iff goalsFor > goalsAgainst.
func BuildGameRecord(raw *nhl.ScoreGame, trackedAbbrev string, sequenceNumber int) (model.GameRecord, error) {
	if raw.ID == 0 {
		return model.GameRecord{}, &MalformedPayloadError{Kind: "game", Ref: raw.GameDate, Reason: "missing game id"}
	}
	gameID := strconv.FormatInt(raw.ID, 10)
	if raw.GameDate == "" {
		return model.GameRecord{}, &MalformedPayloadError{Kind: "game", Ref: gameID, Reason: "missing game date"}
	}
	if raw.AwayTeam.Abbrev == "" || raw.HomeTeam.Abbrev == "" {
		return model.GameRecord{}, &MalformedPayloadError{Kind: "game", Ref: gameID, Reason: "missing team abbreviation"}
	}
	if raw.AwayTeam.Score == nil || raw.HomeTeam.Score == nil {
		return model.GameRecord{}, &MalformedPayloadError{Kind: "game", Ref: gameID, Reason: "missing score"}
	}

	rec := model.GameRecord{
		SequenceNumber: sequenceNumber,
		GameID:         gameID,
		Date:           raw.GameDate,
	}

	if raw.AwayTeam.Abbrev == trackedAbbrev {
		rec.Venue = model.VenueAway
		rec.OpponentAbbrev = raw.HomeTeam.Abbrev
		rec.GoalsFor = *raw.AwayTeam.Score
		rec.GoalsAgainst = *raw.HomeTeam.Score
	} else {
		rec.Venue = model.VenueHome
		rec.OpponentAbbrev = raw.AwayTeam.Abbrev
		rec.GoalsFor = *raw.HomeTeam.Score
		rec.GoalsAgainst = *raw.AwayTeam.Score
	}

	if rec.GoalsFor > rec.GoalsAgainst {
		rec.Outcome = model.OutcomeWin
	} else {
		rec.Outcome = model.OutcomeLoss
	}
	return rec, nil
}

// ExtractGoalEvents maps the raw goal list of one game to normalized goal
// events, in source order (chronological within the game as provided
// upstream, not re-sorted). Goals missing required fields are dropped and
// returned as errors for the run report.
func ExtractGoalEvents(raw *nhl.ScoreGame) ([]model.GoalEvent, []error) {
	gameID := strconv.FormatInt(raw.ID, 10)

	var events []model.GoalEvent
	var dropped []error
	for _, goal := range raw.Goals {
		if goal.LastName.Default == "" {
			dropped = append(dropped, &MalformedPayloadError{Kind: "goal", Ref: gameID, Reason: "missing scorer name"})
			continue
		}
		if goal.Period <= 0 || goal.TimeInPeriod == "" {
			dropped = append(dropped, &MalformedPayloadError{Kind: "goal", Ref: gameID, Reason: "missing period or time"})
			continue
		}

		ev := model.GoalEvent{
			GameID:       gameID,
			Date:         raw.GameDate,
			Period:       goal.Period,
			TimeInPeriod: goal.TimeInPeriod,
			TeamAbbrev:   goal.TeamAbbrev,
			ScorerName:   goal.FirstName.Default + " " + goal.LastName.Default,
		}
		// At most two assists, taken positionally.
		if len(goal.Assists) >= 1 {
			ev.Assist1Name = goal.Assists[0].Name.Default
		}
		if len(goal.Assists) >= 2 {
			ev.Assist2Name = goal.Assists[1].Name.Default
		}
		events = append(events, ev)
	}
	return events, dropped
}
