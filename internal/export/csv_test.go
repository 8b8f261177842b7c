package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/rinkside/internal/model"
)

var sampleGames = []model.GameRecord{
	{
		SequenceNumber: 1,
		GameID:         "2023020005",
		Date:           "2023-10-11",
		OpponentAbbrev: "VAN",
		Venue:          model.VenueAway,
		GoalsFor:       3,
		GoalsAgainst:   2,
		Outcome:        model.OutcomeWin,
	},
	{
		SequenceNumber: 2,
		GameID:         "2023020021",
		Date:           "2023-10-14",
		OpponentAbbrev: "WPG",
		Venue:          model.VenueHome,
		GoalsFor:       1,
		GoalsAgainst:   5,
		Outcome:        model.OutcomeLoss,
	},
}

var sampleGoals = []model.GoalEvent{
	{
		GameID:       "2023020005",
		Date:         "2023-10-11",
		Period:       1,
		TimeInPeriod: "05:39",
		TeamAbbrev:   "EDM",
		ScorerName:   "Connor McDavid",
		Assist1Name:  "Leon Draisaitl",
	},
	{
		GameID:       "2023020005",
		Date:         "2023-10-11",
		Period:       3,
		TimeInPeriod: "18:02",
		TeamAbbrev:   "EDM",
		ScorerName:   "Zach Hyman",
	},
}

var sampleRoster = []model.RosterEntry{
	{Position: "forward", FullName: "Connor McDavid"},
	{Position: "goalie", FullName: "Stuart Skinner"},
}

func TestWriteGames_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGames(&buf, sampleGames))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Game#", "GameID", "Date", "Opponent", "Home/Away", "Scored goals", "Conceded goals", "Win/Loss"}, rows[0])
	assert.Equal(t, []string{"1", "2023020005", "2023-10-11", "VAN", "away", "3", "2", "Win"}, rows[1])
}

func TestGamesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGames(&buf, sampleGames))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	var parsed []model.GameRecord
	for _, row := range rows[1:] {
		seq, _ := strconv.Atoi(row[0])
		gf, _ := strconv.Atoi(row[5])
		ga, _ := strconv.Atoi(row[6])
		parsed = append(parsed, model.GameRecord{
			SequenceNumber: seq,
			GameID:         row[1],
			Date:           row[2],
			OpponentAbbrev: row[3],
			Venue:          model.Venue(row[4]),
			GoalsFor:       gf,
			GoalsAgainst:   ga,
			Outcome:        model.Outcome(row[7]),
		})
	}
	assert.Equal(t, sampleGames, parsed)
}

func TestGoalsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGoals(&buf, sampleGoals))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	var parsed []model.GoalEvent
	for _, row := range rows[1:] {
		period, _ := strconv.Atoi(row[2])
		parsed = append(parsed, model.GoalEvent{
			GameID:       row[0],
			Date:         row[1],
			Period:       period,
			TeamAbbrev:   row[3],
			ScorerName:   row[4],
			Assist1Name:  row[5],
			Assist2Name:  row[6],
			TimeInPeriod: row[7],
		})
	}
	assert.Equal(t, sampleGoals, parsed)
}

func TestRosterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRoster(&buf, sampleRoster))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Position", "Name"}, rows[0])

	var parsed []model.RosterEntry
	for _, row := range rows[1:] {
		parsed = append(parsed, model.RosterEntry{Position: row[0], FullName: row[1]})
	}
	assert.Equal(t, sampleRoster, parsed)
}

func TestWriteEmptyTablesKeepHeaders(t *testing.T) {
	var games, goals, roster bytes.Buffer
	require.NoError(t, WriteGames(&games, nil))
	require.NoError(t, WriteGoals(&goals, nil))
	require.NoError(t, WriteRoster(&roster, nil))

	assert.Equal(t, "Position,Name\n", roster.String())
	for _, out := range []string{games.String(), goals.String()} {
		assert.Equal(t, 1, strings.Count(out, "\n"), "header row only")
	}
}
