package pipeline

import (
	"errors"
	"fmt"
)

// ErrAnchorNotFound aborts a run: the configured first-game date does not
// appear in the fetched schedule, so there is no window to slice.
var ErrAnchorNotFound = errors.New("anchor date not found in schedule")

// MalformedPayloadError marks a single record whose payload is missing a
// required field. The record is dropped and reported; the run continues.
type MalformedPayloadError struct {
	Kind   string // "game", "goal" or "roster"
	Ref    string // game ID, date or group key identifying the record
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed %s payload (%s): %s", e.Kind, e.Ref, e.Reason)
}

// SkippedItem is one entry of the post-run report: a date or record that
// produced no output, with the reason it was skipped.
type SkippedItem struct {
	Date   string `json:"date,omitempty"`
	Ref    string `json:"ref,omitempty"`
	Reason string `json:"reason"`
}

// Report summarizes a pipeline run. It is returned alongside the data so
// partial output is never presented as complete.
type Report struct {
	DatesResolved int           `json:"dates_resolved"`
	Truncated     bool          `json:"truncated"`
	TruncatedBy   int           `json:"truncated_by,omitempty"` // dates short of the window
	GamesIngested int           `json:"games_ingested"`
	GoalsIngested int           `json:"goals_ingested"`
	RosterEntries int           `json:"roster_entries"`
	Skipped       []SkippedItem `json:"skipped,omitempty"`
}

func (r *Report) skip(date, ref, reason string) {
	r.Skipped = append(r.Skipped, SkippedItem{Date: date, Ref: ref, Reason: reason})
}

// Summary renders the one-line human summary logged after each run.
func (r *Report) Summary() string {
	s := fmt.Sprintf("%d games, %d goals, %d roster entries ingested (%d dates resolved",
		r.GamesIngested, r.GoalsIngested, r.RosterEntries, r.DatesResolved)
	if r.Truncated {
		s += fmt.Sprintf(", %d short of a full season", r.TruncatedBy)
	}
	s += ")"
	if len(r.Skipped) > 0 {
		s += fmt.Sprintf(", %d items skipped", len(r.Skipped))
	}
	return s
}
