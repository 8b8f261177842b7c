package dashboard

import (
	"fmt"
	"strings"

	tpl "html/template"

	"github.com/fortuna/rinkside/internal/model"
	"github.com/fortuna/rinkside/internal/pipeline"
)

// Fixed palette cycled across plotted players.
var seriesColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

const (
	chartWidth   = 960
	chartHeight  = 320
	chartPadLeft = 40
	chartPadTop  = 30
	chartPadBot  = 30
)

// renderPointsChart builds an inline SVG line chart of per-game points for
// the given players, with the win/loss letter of each game annotated along
// the top, mirroring the original matplotlib figure.
func renderPointsChart(buf *strings.Builder, data *pipeline.SeasonData, players []string) {
	if len(data.Games) == 0 {
		buf.WriteString(`<p class="empty">No games ingested yet.</p>`)
		return
	}

	maxGame := 0
	for _, g := range data.Games {
		if g.SequenceNumber > maxGame {
			maxGame = g.SequenceNumber
		}
	}

	type plotted struct {
		name   string
		series []model.PointsSeriesPoint
	}
	var plots []plotted
	maxPoints := 1
	for _, name := range players {
		series := data.PointsSeries(name)
		plots = append(plots, plotted{name: name, series: series})
		for _, pt := range series {
			if pt.Points > maxPoints {
				maxPoints = pt.Points
			}
		}
	}

	plotW := float64(chartWidth - chartPadLeft - 10)
	plotH := float64(chartHeight - chartPadTop - chartPadBot)
	xPos := func(gameNumber int) float64 {
		if maxGame <= 1 {
			return chartPadLeft + plotW/2
		}
		return chartPadLeft + plotW*float64(gameNumber-1)/float64(maxGame-1)
	}
	yPos := func(points int) float64 {
		return chartPadTop + plotH - plotH*float64(points)/float64(maxPoints)
	}

	fmt.Fprintf(buf, `<svg viewBox="0 0 %d %d" class="chart" role="img">`, chartWidth, chartHeight)

	// Axes and y gridlines.
	for p := 0; p <= maxPoints; p++ {
		y := yPos(p)
		fmt.Fprintf(buf, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#ddd"/>`, chartPadLeft, y, chartWidth-10, y)
		fmt.Fprintf(buf, `<text x="%d" y="%.1f" font-size="10" text-anchor="end" fill="#666">%d</text>`, chartPadLeft-5, y+3, p)
	}

	// Win/loss annotations along the top, one letter per game.
	for _, g := range data.Games {
		letter := "L"
		fill := "#c0392b"
		if g.Outcome == model.OutcomeWin {
			letter = "W"
			fill = "#27ae60"
		}
		fmt.Fprintf(buf, `<text x="%.1f" y="%d" font-size="9" text-anchor="middle" fill="%s">%s</text>`,
			xPos(g.SequenceNumber), chartPadTop-10, fill, letter)
	}

	for i, plot := range plots {
		if len(plot.series) == 0 {
			continue
		}
		color := seriesColors[i%len(seriesColors)]

		var pts []string
		for _, pt := range plot.series {
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", xPos(pt.GameNumber), yPos(pt.Points)))
		}
		fmt.Fprintf(buf, `<polyline points="%s" fill="none" stroke="%s" stroke-width="1.5"/>`,
			strings.Join(pts, " "), color)
		for _, pt := range plot.series {
			fmt.Fprintf(buf, `<circle cx="%.1f" cy="%.1f" r="2.5" fill="%s"><title>%s, game %d: %d pts</title></circle>`,
				xPos(pt.GameNumber), yPos(pt.Points), color,
				tpl.HTMLEscapeString(plot.name), pt.GameNumber, pt.Points)
		}
	}

	// X axis labels every five games.
	for n := 1; n <= maxGame; n++ {
		if n != 1 && n != maxGame && n%5 != 0 {
			continue
		}
		fmt.Fprintf(buf, `<text x="%.1f" y="%d" font-size="10" text-anchor="middle" fill="#666">%d</text>`,
			xPos(n), chartHeight-10, n)
	}

	buf.WriteString(`</svg>`)

	// Legend under the chart.
	buf.WriteString(`<div class="legend">`)
	for i, plot := range plots {
		fmt.Fprintf(buf, `<span style="color:%s">&#9632; %s</span> `,
			seriesColors[i%len(seriesColors)], tpl.HTMLEscapeString(plot.name))
	}
	buf.WriteString(`</div>`)
}
