package websocket

import (
	"encoding/json"

	"github.com/fortuna/rinkside/internal/pipeline"
)

// ProgressEvent is the wire shape of one progress update.
type ProgressEvent struct {
	Type    string `json:"type"` // run_start, date_fetched, run_complete, run_error
	Date    string `json:"date,omitempty"`
	Fetched int    `json:"fetched,omitempty"`
	Total   int    `json:"total,omitempty"`
	Error   string `json:"error,omitempty"`

	Report *pipeline.Report `json:"report,omitempty"`
}

// ProgressReporter adapts the hub to the pipeline's Reporter interface.
// Broadcast goes through the hub's channel, so concurrent callbacks from
// fetch workers are safe.
type ProgressReporter struct {
	hub *Hub
}

// NewProgressReporter wraps a hub.
func NewProgressReporter(hub *Hub) *ProgressReporter {
	return &ProgressReporter{hub: hub}
}

func (p *ProgressReporter) OnRunStart(totalDates int) {
	p.send(ProgressEvent{Type: "run_start", Total: totalDates})
}

func (p *ProgressReporter) OnDateFetched(date string, fetched, total int) {
	p.send(ProgressEvent{Type: "date_fetched", Date: date, Fetched: fetched, Total: total})
}

func (p *ProgressReporter) OnRunComplete(report pipeline.Report) {
	p.send(ProgressEvent{Type: "run_complete", Report: &report})
}

func (p *ProgressReporter) OnRunError(err error) {
	p.send(ProgressEvent{Type: "run_error", Error: err.Error()})
}

func (p *ProgressReporter) send(ev ProgressEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	p.hub.Broadcast(data)
}
