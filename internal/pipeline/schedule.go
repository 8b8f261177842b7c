package pipeline

import (
	"github.com/fortuna/rinkside/internal/nhl"
)

// ResolveRegularSeasonDates slices the regular-season window out of a full
// club schedule: the contiguous run of windowSize dates starting at the
// first occurrence of anchorDate, in schedule order. Dates are not
// deduplicated.
//
// Returns ErrAnchorNotFound when anchorDate is absent. When fewer than
// windowSize dates remain from the anchor the available tail is returned
// with truncated=true; a partial season mid-season is a valid state, not an
// error.
func ResolveRegularSeasonDates(schedule *nhl.ScheduleResponse, anchorDate string, windowSize int) (dates []string, truncated bool, err error) {
	start := -1
	for i, g := range schedule.Games {
		if g.GameDate == anchorDate {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, false, ErrAnchorNotFound
	}

	end := start + windowSize
	if end > len(schedule.Games) {
		end = len(schedule.Games)
		truncated = true
	}

	dates = make([]string, 0, end-start)
	for _, g := range schedule.Games[start:end] {
		dates = append(dates, g.GameDate)
	}
	return dates, truncated, nil
}
