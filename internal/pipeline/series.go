package pipeline

import (
	"sort"
	"strings"

	"github.com/fortuna/rinkside/internal/model"
)

// DerivePointsSeries computes a player's per-game scoring points across the
// season: for each game, one point per goal whose scorer matches the player
// plus one per goal where either assist matches.
//
// Matching is by surname substring — the last whitespace-delimited token of
// playerFullName contained anywhere in the scorer or assist name. That
// tolerates formatting variance in upstream names but can falsely attribute
// points when one surname nests inside another (see DESIGN.md); it is kept
// deliberately.
//
// Games whose gameId joins to zero goal events are skipped outright, not
// recorded as zero, so the series' GameNumber values (which carry the
// game's SequenceNumber) can have gaps.
func DerivePointsSeries(games []model.GameRecord, goals []model.GoalEvent, playerFullName string) []model.PointsSeriesPoint {
	fields := strings.Fields(playerFullName)
	if len(fields) == 0 {
		return nil
	}
	surname := fields[len(fields)-1]

	byGame := make(map[string][]model.GoalEvent, len(games))
	for _, g := range goals {
		byGame[g.GameID] = append(byGame[g.GameID], g)
	}

	ordered := make([]model.GameRecord, len(games))
	copy(ordered, games)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].SequenceNumber < ordered[j].SequenceNumber
	})

	var series []model.PointsSeriesPoint
	for _, game := range ordered {
		rows := byGame[game.GameID]
		if len(rows) == 0 {
			continue
		}

		points := 0
		for _, row := range rows {
			if strings.Contains(row.ScorerName, surname) {
				points++
			}
			if strings.Contains(row.Assist1Name, surname) || strings.Contains(row.Assist2Name, surname) {
				points++
			}
		}
		series = append(series, model.PointsSeriesPoint{
			GameNumber: game.SequenceNumber,
			Points:     points,
		})
	}
	return series
}
