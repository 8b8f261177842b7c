// Package dashboard renders the HTML views: the three season tables, the
// points-per-game chart with player selection, CSV download links, and the
// refresh control wired to the progress WebSocket.
package dashboard

import (
	"fmt"
	"io"
	"strings"

	tpl "html/template"

	"github.com/fortuna/rinkside/internal/pipeline"
)

// PageData carries everything the index page needs.
type PageData struct {
	TeamAbbrev string
	SeasonID   string
	Data       *pipeline.SeasonData // nil before the first run
	Selected   []string             // players to plot; empty means all forwards
	Refreshing bool
}

// RenderIndex writes the full dashboard page.
func RenderIndex(w io.Writer, page PageData) error {
	var buf strings.Builder

	title := fmt.Sprintf("%s %s Data", page.TeamAbbrev, formatSeason(page.SeasonID))
	buf.WriteString(`<!doctype html><html lang="en"><head><meta charset="UTF-8">`)
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	fmt.Fprintf(&buf, `<title>%s</title>`, tpl.HTMLEscapeString(title))
	writeStyles(&buf)
	buf.WriteString(`</head><body><div class="wrap">`)
	fmt.Fprintf(&buf, `<h1>%s</h1>`, tpl.HTMLEscapeString(title))

	writeRefreshControl(&buf, page.Refreshing)

	if page.Data == nil {
		buf.WriteString(`<p class="empty">No season data yet. Hit Refresh to ingest the schedule, box scores and roster.</p>`)
		buf.WriteString(`</div>`)
		writeScript(&buf)
		buf.WriteString(`</body></html>`)
		_, err := io.WriteString(w, buf.String())
		return err
	}

	data := page.Data

	writeReport(&buf, &data.Report)

	buf.WriteString(`<h2>Points per Game</h2>`)
	players := page.Selected
	if len(players) == 0 {
		for _, f := range data.Forwards() {
			players = append(players, f.FullName)
		}
	}
	renderPointsChart(&buf, data, players)
	writePlayerPicker(&buf, data, page.Selected)

	buf.WriteString(`<h2>Games Information</h2>`)
	fmt.Fprintf(&buf, `<p><a href="/api/v1/export/games.csv" download>Download Games Info as CSV</a></p>`)
	writeGamesTable(&buf, data)

	buf.WriteString(`<h2>Goals Information</h2>`)
	fmt.Fprintf(&buf, `<p><a href="/api/v1/export/goals.csv" download>Download Goals Info as CSV</a></p>`)
	writeGoalsTable(&buf, data)

	buf.WriteString(`<h2>Roster Information</h2>`)
	fmt.Fprintf(&buf, `<p><a href="/api/v1/export/roster.csv" download>Download Roster Info as CSV</a></p>`)
	writeRosterTable(&buf, data)

	buf.WriteString(`</div>`)
	writeScript(&buf)
	buf.WriteString(`</body></html>`)

	_, err := io.WriteString(w, buf.String())
	return err
}

// formatSeason turns "20232024" into "2023-2024"; anything unexpected is
// shown verbatim.
func formatSeason(seasonID string) string {
	if len(seasonID) == 8 {
		return seasonID[:4] + "-" + seasonID[4:]
	}
	return seasonID
}

func writeStyles(buf *strings.Builder) {
	buf.WriteString(`<style>
body{font-family:system-ui,sans-serif;margin:0;background:#f4f6f8;color:#1c2733}
.wrap{max-width:1000px;margin:0 auto;padding:24px}
h1{font-size:1.6rem}h2{font-size:1.2rem;margin-top:2rem}
table{border-collapse:collapse;width:100%;font-size:.85rem;background:#fff}
th,td{border:1px solid #d8dee4;padding:4px 8px;text-align:left}
th{background:#e8edf2}
.chart{width:100%;height:auto;background:#fff;border:1px solid #d8dee4}
.legend{font-size:.8rem;margin:8px 0}
.empty{color:#667}
.report{background:#fff;border:1px solid #d8dee4;padding:8px 12px;font-size:.85rem}
.report .warn{color:#a05a00}
#refresh-status{margin-left:12px;font-size:.85rem;color:#667}
button{padding:6px 16px;cursor:pointer}
.picker{font-size:.85rem;background:#fff;border:1px solid #d8dee4;padding:8px 12px;margin:8px 0}
.picker label{margin-right:12px;white-space:nowrap}
</style>`)
}

func writeRefreshControl(buf *strings.Builder, refreshing bool) {
	buf.WriteString(`<p><button id="refresh-btn" onclick="startRefresh()"`)
	if refreshing {
		buf.WriteString(` disabled`)
	}
	buf.WriteString(`>Refresh</button><span id="refresh-status">`)
	if refreshing {
		buf.WriteString(`refresh in progress…`)
	}
	buf.WriteString(`</span></p>`)
}

func writeReport(buf *strings.Builder, report *pipeline.Report) {
	buf.WriteString(`<div class="report">`)
	fmt.Fprintf(buf, `<div>%s</div>`, tpl.HTMLEscapeString(report.Summary()))
	if report.Truncated {
		fmt.Fprintf(buf, `<div class="warn">Partial season: %d dates short of a full window.</div>`, report.TruncatedBy)
	}
	if len(report.Skipped) > 0 {
		buf.WriteString(`<details><summary>Skipped items</summary><ul>`)
		for _, s := range report.Skipped {
			label := s.Reason
			if s.Date != "" {
				label = s.Date + ": " + label
			}
			fmt.Fprintf(buf, `<li>%s</li>`, tpl.HTMLEscapeString(label))
		}
		buf.WriteString(`</ul></details>`)
	}
	buf.WriteString(`</div>`)
}

func writePlayerPicker(buf *strings.Builder, data *pipeline.SeasonData, selected []string) {
	chosen := make(map[string]bool, len(selected))
	for _, name := range selected {
		chosen[name] = true
	}

	buf.WriteString(`<form method="get" class="picker">`)
	buf.WriteString(`<strong>Players:</strong> `)
	for _, entry := range data.Roster {
		name := entry.FullName
		fmt.Fprintf(buf, `<label><input type="checkbox" name="player" value="%s"`, tpl.HTMLEscapeString(name))
		if chosen[name] {
			buf.WriteString(` checked`)
		}
		fmt.Fprintf(buf, `> %s</label>`, tpl.HTMLEscapeString(name))
	}
	buf.WriteString(` <button type="submit">Plot</button>`)
	buf.WriteString(` <a href="/">all forwards</a>`)
	buf.WriteString(`</form>`)
}

func writeGamesTable(buf *strings.Builder, data *pipeline.SeasonData) {
	buf.WriteString(`<table><tr><th>Game#</th><th>GameID</th><th>Date</th><th>Opponent</th><th>Home/Away</th><th>Scored goals</th><th>Conceded goals</th><th>Win/Loss</th></tr>`)
	for _, g := range data.Games {
		fmt.Fprintf(buf, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%s</td></tr>`,
			g.SequenceNumber,
			tpl.HTMLEscapeString(g.GameID),
			tpl.HTMLEscapeString(g.Date),
			tpl.HTMLEscapeString(g.OpponentAbbrev),
			g.Venue,
			g.GoalsFor,
			g.GoalsAgainst,
			g.Outcome,
		)
	}
	buf.WriteString(`</table>`)
}

func writeGoalsTable(buf *strings.Builder, data *pipeline.SeasonData) {
	buf.WriteString(`<table><tr><th>ID</th><th>Date</th><th>Period</th><th>Team</th><th>Scored by</th><th>Assist 1</th><th>Assist 2</th><th>Time</th></tr>`)
	for _, g := range data.Goals {
		fmt.Fprintf(buf, `<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			tpl.HTMLEscapeString(g.GameID),
			tpl.HTMLEscapeString(g.Date),
			g.Period,
			tpl.HTMLEscapeString(g.TeamAbbrev),
			tpl.HTMLEscapeString(g.ScorerName),
			tpl.HTMLEscapeString(g.Assist1Name),
			tpl.HTMLEscapeString(g.Assist2Name),
			tpl.HTMLEscapeString(g.TimeInPeriod),
		)
	}
	buf.WriteString(`</table>`)
}

func writeRosterTable(buf *strings.Builder, data *pipeline.SeasonData) {
	buf.WriteString(`<table><tr><th>Position</th><th>Name</th></tr>`)
	for _, e := range data.Roster {
		fmt.Fprintf(buf, `<tr><td>%s</td><td>%s</td></tr>`,
			tpl.HTMLEscapeString(e.Position),
			tpl.HTMLEscapeString(e.FullName),
		)
	}
	buf.WriteString(`</table>`)
}

// writeScript wires the refresh button: POST the refresh endpoint, follow
// progress over the WebSocket, reload when the run completes.
func writeScript(buf *strings.Builder) {
	buf.WriteString(`<script>
let ws;
function connectWS(){
	const proto = location.protocol === 'https:' ? 'wss' : 'ws';
	ws = new WebSocket(proto + '://' + location.host + '/ws/refresh');
	ws.onmessage = (msg) => {
		const ev = JSON.parse(msg.data);
		const status = document.getElementById('refresh-status');
		if (ev.type === 'run_start') status.innerText = 'fetching 0/' + ev.total + '…';
		if (ev.type === 'date_fetched') status.innerText = 'fetching ' + ev.fetched + '/' + ev.total + '…';
		if (ev.type === 'run_error') {
			status.innerText = 'refresh failed: ' + ev.error;
			document.getElementById('refresh-btn').disabled = false;
		}
		if (ev.type === 'run_complete') location.reload();
	};
	ws.onclose = () => setTimeout(connectWS, 2000);
}
connectWS();
async function startRefresh(){
	const btn = document.getElementById('refresh-btn');
	btn.disabled = true;
	document.getElementById('refresh-status').innerText = 'starting…';
	const resp = await fetch('/api/v1/refresh', {method: 'POST'});
	if (!resp.ok && resp.status !== 409) {
		document.getElementById('refresh-status').innerText = 'refresh request failed';
		btn.disabled = false;
	}
}
</script>`)
}
