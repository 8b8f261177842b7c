package pipeline

import (
	"sort"

	"github.com/fortuna/rinkside/internal/model"
	"github.com/fortuna/rinkside/internal/nhl"
)

// positionNames maps api-web's plural position-group keys to the singular
// form used in the roster table. Unknown keys pass through unchanged so a
// new group from upstream widens the table instead of breaking it.
var positionNames = map[string]string{
	"forwards":   "forward",
	"defensemen": "defenseman",
	"goalies":    "goalie",
}

// rosterGroupOrder fixes the iteration order over the payload's groups:
// the known groups in their customary order, then any unknown groups
// alphabetically. JSON objects carry no order of their own, so this keeps
// the flattened table deterministic.
var rosterGroupOrder = []string{"forwards", "defensemen", "goalies"}

// NormalizeRoster flattens the grouped roster payload into one sequence of
// entries. Players with no name at all are dropped and reported.
func NormalizeRoster(raw nhl.RosterResponse) ([]model.RosterEntry, []error) {
	groups := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, key := range rosterGroupOrder {
		if _, ok := raw[key]; ok {
			groups = append(groups, key)
			seen[key] = true
		}
	}
	var extra []string
	for key := range raw {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	groups = append(groups, extra...)

	var entries []model.RosterEntry
	var dropped []error
	for _, group := range groups {
		position := group
		if singular, ok := positionNames[group]; ok {
			position = singular
		}
		for _, player := range raw[group] {
			name := fullName(player)
			if name == "" {
				dropped = append(dropped, &MalformedPayloadError{Kind: "roster", Ref: group, Reason: "player entry without a name"})
				continue
			}
			entries = append(entries, model.RosterEntry{Position: position, FullName: name})
		}
	}
	return entries, dropped
}

func fullName(p nhl.RosterPlayer) string {
	first, last := p.FirstName.Default, p.LastName.Default
	switch {
	case first == "" && last == "":
		return ""
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
