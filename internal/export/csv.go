// Package export renders the three season tables as CSV, with the column
// headers the original dashboard used for its download buttons.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/fortuna/rinkside/internal/model"
)

// Default download filenames.
const (
	GamesFilename  = "games_info.csv"
	GoalsFilename  = "goals_info.csv"
	RosterFilename = "roster.csv"
)

// WriteGames writes the games table: one row per game record, header first.
func WriteGames(w io.Writer, games []model.GameRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"Game#", "GameID", "Date", "Opponent", "Home/Away", "Scored goals", "Conceded goals", "Win/Loss"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, g := range games {
		rec := []string{
			strconv.Itoa(g.SequenceNumber),
			g.GameID,
			g.Date,
			g.OpponentAbbrev,
			string(g.Venue),
			strconv.Itoa(g.GoalsFor),
			strconv.Itoa(g.GoalsAgainst),
			string(g.Outcome),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGoals writes the goals table in source event order.
func WriteGoals(w io.Writer, goals []model.GoalEvent) error {
	cw := csv.NewWriter(w)

	header := []string{"ID", "Date", "Period", "Team", "Scored by", "Assist 1", "Assist 2", "Time"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, g := range goals {
		rec := []string{
			g.GameID,
			g.Date,
			strconv.Itoa(g.Period),
			g.TeamAbbrev,
			g.ScorerName,
			g.Assist1Name,
			g.Assist2Name,
			g.TimeInPeriod,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRoster writes the flattened roster table.
func WriteRoster(w io.Writer, roster []model.RosterEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Position", "Name"}); err != nil {
		return err
	}
	for _, e := range roster {
		if err := cw.Write([]string{e.Position, e.FullName}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
