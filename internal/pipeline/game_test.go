package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/rinkside/internal/model"
	"github.com/fortuna/rinkside/internal/nhl"
)

func intp(v int) *int { return &v }

func scoreGame(id int64, date, away string, awayScore int, home string, homeScore int) nhl.ScoreGame {
	return nhl.ScoreGame{
		ID:       id,
		GameDate: date,
		AwayTeam: nhl.TeamSide{Abbrev: away, Score: intp(awayScore)},
		HomeTeam: nhl.TeamSide{Abbrev: home, Score: intp(homeScore)},
	}
}

func TestSelectTrackedGame(t *testing.T) {
	scores := &nhl.ScoreResponse{Games: []nhl.ScoreGame{
		scoreGame(1, "2023-10-11", "CHI", 1, "PIT", 4),
		scoreGame(2, "2023-10-11", "EDM", 3, "VAN", 8),
	}}

	got := SelectTrackedGame(scores, "EDM")
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)

	assert.Nil(t, SelectTrackedGame(scores, "TOR"), "absent team is a normal miss, not an error")
	assert.Nil(t, SelectTrackedGame(&nhl.ScoreResponse{}, "EDM"))
}

func TestBuildGameRecord(t *testing.T) {
	tests := []struct {
		name string
		raw  nhl.ScoreGame
		want model.GameRecord
	}{
		{
			name: "tracked team away and winning",
			raw:  scoreGame(10, "2023-11-02", "EDM", 3, "TOR", 2),
			want: model.GameRecord{
				SequenceNumber: 7,
				GameID:         "10",
				Date:           "2023-11-02",
				OpponentAbbrev: "TOR",
				Venue:          model.VenueAway,
				GoalsFor:       3,
				GoalsAgainst:   2,
				Outcome:        model.OutcomeWin,
			},
		},
		{
			name: "tracked team home and losing",
			raw:  scoreGame(11, "2023-11-04", "VAN", 5, "EDM", 1),
			want: model.GameRecord{
				SequenceNumber: 7,
				GameID:         "11",
				Date:           "2023-11-04",
				OpponentAbbrev: "VAN",
				Venue:          model.VenueHome,
				GoalsFor:       1,
				GoalsAgainst:   5,
				Outcome:        model.OutcomeLoss,
			},
		},
		{
			// Binary classification by design: an overtime defeat where the
			// scores end level on paper still maps to a loss.
			name: "equal scores classify as loss",
			raw:  scoreGame(12, "2023-11-06", "EDM", 2, "DAL", 2),
			want: model.GameRecord{
				SequenceNumber: 7,
				GameID:         "12",
				Date:           "2023-11-06",
				OpponentAbbrev: "DAL",
				Venue:          model.VenueAway,
				GoalsFor:       2,
				GoalsAgainst:   2,
				Outcome:        model.OutcomeLoss,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildGameRecord(&tt.raw, "EDM", 7)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildGameRecord_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*nhl.ScoreGame)
	}{
		{"missing id", func(g *nhl.ScoreGame) { g.ID = 0 }},
		{"missing date", func(g *nhl.ScoreGame) { g.GameDate = "" }},
		{"missing abbrev", func(g *nhl.ScoreGame) { g.HomeTeam.Abbrev = "" }},
		{"missing score", func(g *nhl.ScoreGame) { g.AwayTeam.Score = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := scoreGame(10, "2023-11-02", "EDM", 3, "TOR", 2)
			tt.mutate(&raw)

			_, err := BuildGameRecord(&raw, "EDM", 1)
			var malformed *MalformedPayloadError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, "game", malformed.Kind)
		})
	}
}

func TestExtractGoalEvents(t *testing.T) {
	raw := scoreGame(20, "2023-10-14", "EDM", 2, "VAN", 4)
	raw.Goals = []nhl.ScoreGoal{
		{
			Period:       1,
			TimeInPeriod: "05:39",
			TeamAbbrev:   "EDM",
			FirstName:    nhl.LocalizedString{Default: "Connor"},
			LastName:     nhl.LocalizedString{Default: "McDavid"},
			Assists: []nhl.ScoreAssist{
				{Name: nhl.LocalizedString{Default: "Leon Draisaitl"}},
			},
		},
		{
			Period:       2,
			TimeInPeriod: "12:01",
			TeamAbbrev:   "VAN",
			FirstName:    nhl.LocalizedString{Default: "Elias"},
			LastName:     nhl.LocalizedString{Default: "Pettersson"},
			Assists: []nhl.ScoreAssist{
				{Name: nhl.LocalizedString{Default: "Quinn Hughes"}},
				{Name: nhl.LocalizedString{Default: "J.T. Miller"}},
			},
		},
		{
			Period:       3,
			TimeInPeriod: "01:15",
			TeamAbbrev:   "EDM",
			FirstName:    nhl.LocalizedString{Default: "Zach"},
			LastName:     nhl.LocalizedString{Default: "Hyman"},
		},
	}

	events, dropped := ExtractGoalEvents(&raw)
	require.Empty(t, dropped)
	require.Len(t, events, 3)

	assert.Equal(t, model.GoalEvent{
		GameID:       "20",
		Date:         "2023-10-14",
		Period:       1,
		TimeInPeriod: "05:39",
		TeamAbbrev:   "EDM",
		ScorerName:   "Connor McDavid",
		Assist1Name:  "Leon Draisaitl",
	}, events[0], "single assist fills assist1 only")

	assert.Equal(t, "Quinn Hughes", events[1].Assist1Name, "assists taken positionally")
	assert.Equal(t, "J.T. Miller", events[1].Assist2Name)

	assert.Empty(t, events[2].Assist1Name, "unassisted goal leaves both empty")
	assert.Empty(t, events[2].Assist2Name)

	// Source ordering preserved, never re-sorted.
	assert.Equal(t, []int{1, 2, 3}, []int{events[0].Period, events[1].Period, events[2].Period})
}

func TestExtractGoalEvents_DropsMalformed(t *testing.T) {
	raw := scoreGame(21, "2023-10-16", "EDM", 1, "WPG", 0)
	raw.Goals = []nhl.ScoreGoal{
		{Period: 1, TimeInPeriod: "03:00"}, // no scorer name
		{
			Period:       0, // no period
			TimeInPeriod: "04:00",
			FirstName:    nhl.LocalizedString{Default: "Ryan"},
			LastName:     nhl.LocalizedString{Default: "Nugent-Hopkins"},
		},
		{
			Period:       2,
			TimeInPeriod: "10:10",
			TeamAbbrev:   "EDM",
			FirstName:    nhl.LocalizedString{Default: "Evan"},
			LastName:     nhl.LocalizedString{Default: "Bouchard"},
		},
	}

	events, dropped := ExtractGoalEvents(&raw)
	assert.Len(t, dropped, 2, "bad entries drop individually, not the whole game")
	require.Len(t, events, 1)
	assert.Equal(t, "Evan Bouchard", events[0].ScorerName)
}

func TestExtractGoalEvents_NoGoals(t *testing.T) {
	raw := scoreGame(22, "2023-10-18", "EDM", 0, "NYR", 0)
	events, dropped := ExtractGoalEvents(&raw)
	assert.Empty(t, events)
	assert.Empty(t, dropped)
}
