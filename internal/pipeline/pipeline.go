package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fortuna/rinkside/internal/model"
	"github.com/fortuna/rinkside/internal/nhl"
)

// Config identifies the tracked club and season. The defaults reproduce the
// original dashboard: Edmonton's 2023-2024 regular season.
type Config struct {
	TeamAbbrev   string
	SeasonID     string
	AnchorDate   string // date of the first regular-season game, YYYY-MM-DD
	WindowSize   int    // regular-season length in game dates
	FetchWorkers int    // concurrent score-day fetches
}

// DefaultConfig returns the stock single-club configuration.
func DefaultConfig() Config {
	return Config{
		TeamAbbrev:   "EDM",
		SeasonID:     "20232024",
		AnchorDate:   "2023-10-11",
		WindowSize:   82,
		FetchWorkers: 4,
	}
}

// SeasonData is the immutable output of one run: the three flat tables plus
// the run report. Nothing mutates it after Run returns; readers share it
// freely.
type SeasonData struct {
	Games     []model.GameRecord  `json:"games"`
	Goals     []model.GoalEvent   `json:"goals"`
	Roster    []model.RosterEntry `json:"roster"`
	Report    Report              `json:"report"`
	FetchedAt time.Time           `json:"fetched_at"`
}

// PointsSeries derives the per-game scoring series for one player from this
// snapshot's tables.
func (d *SeasonData) PointsSeries(playerFullName string) []model.PointsSeriesPoint {
	return DerivePointsSeries(d.Games, d.Goals, playerFullName)
}

// Forwards returns the roster entries the chart defaults to plotting.
func (d *SeasonData) Forwards() []model.RosterEntry {
	var fwd []model.RosterEntry
	for _, e := range d.Roster {
		if e.Position == "forward" {
			fwd = append(fwd, e)
		}
	}
	return fwd
}

// Pipeline runs the full ingestion: schedule -> window of dates -> one
// score summary per date -> game records and goal events, plus the roster
// snapshot. State flows through return values only.
type Pipeline struct {
	client *nhl.Client
	cfg    Config
}

// New builds a pipeline, filling zero config fields from the defaults.
func New(client *nhl.Client, cfg Config) *Pipeline {
	def := DefaultConfig()
	if cfg.TeamAbbrev == "" {
		cfg.TeamAbbrev = def.TeamAbbrev
	}
	if cfg.SeasonID == "" {
		cfg.SeasonID = def.SeasonID
	}
	if cfg.AnchorDate == "" {
		cfg.AnchorDate = def.AnchorDate
	}
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = def.WindowSize
	}
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = def.FetchWorkers
	}
	return &Pipeline{client: client, cfg: cfg}
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Run executes one full ingestion. Only a missing anchor date or context
// cancellation aborts the run; every other failure is isolated to its date
// or record and aggregated in the report.
func (p *Pipeline) Run(ctx context.Context, reporter Reporter) (*SeasonData, error) {
	schedule, err := p.client.FetchSchedule(ctx, p.cfg.TeamAbbrev, p.cfg.SeasonID)
	if err != nil {
		err = fmt.Errorf("schedule: %w", err)
		if reporter != nil {
			reporter.OnRunError(err)
		}
		return nil, err
	}

	dates, truncated, err := ResolveRegularSeasonDates(schedule, p.cfg.AnchorDate, p.cfg.WindowSize)
	if err != nil {
		if reporter != nil {
			reporter.OnRunError(err)
		}
		return nil, fmt.Errorf("resolve season window: %w", err)
	}

	report := Report{
		DatesResolved: len(dates),
		Truncated:     truncated,
	}
	if truncated {
		report.TruncatedBy = p.cfg.WindowSize - len(dates)
		log.Printf("[pipeline] schedule truncated: %d of %d dates available", len(dates), p.cfg.WindowSize)
	}

	if reporter != nil {
		reporter.OnRunStart(len(dates))
	}

	payloads, fetchErrs := p.fetchScoreDays(ctx, dates, reporter)
	if err := ctx.Err(); err != nil {
		if reporter != nil {
			reporter.OnRunError(err)
		}
		return nil, err
	}

	data := &SeasonData{FetchedAt: time.Now().UTC()}

	// Assembly walks the dates in schedule order so sequence numbers come
	// out strictly increasing by date regardless of fetch interleaving.
	for i, date := range dates {
		if fetchErrs[i] != nil {
			report.skip(date, "", fmt.Sprintf("fetch failed: %v", fetchErrs[i]))
			continue
		}

		raw := SelectTrackedGame(payloads[i], p.cfg.TeamAbbrev)
		if raw == nil {
			report.skip(date, "", "no tracked-team game that date")
			continue
		}

		rec, err := BuildGameRecord(raw, p.cfg.TeamAbbrev, len(data.Games)+1)
		if err != nil {
			log.Printf("[pipeline] skipping game on %s: %v", date, err)
			report.skip(date, "", err.Error())
			continue
		}
		data.Games = append(data.Games, rec)

		events, dropped := ExtractGoalEvents(raw)
		for _, derr := range dropped {
			log.Printf("[pipeline] dropping goal in game %s: %v", rec.GameID, derr)
			report.skip(date, rec.GameID, derr.Error())
		}
		data.Goals = append(data.Goals, events...)
	}

	// The roster snapshot is independent of the game loop; a failure here
	// leaves the tables usable and is surfaced through the report.
	roster, err := p.client.FetchRoster(ctx, p.cfg.TeamAbbrev, p.cfg.SeasonID)
	if err != nil {
		log.Printf("[pipeline] roster fetch failed: %v", err)
		report.skip("", "roster", fmt.Sprintf("fetch failed: %v", err))
	} else {
		entries, dropped := NormalizeRoster(roster)
		for _, derr := range dropped {
			report.skip("", "roster", derr.Error())
		}
		data.Roster = entries
	}

	report.GamesIngested = len(data.Games)
	report.GoalsIngested = len(data.Goals)
	report.RosterEntries = len(data.Roster)
	data.Report = report

	log.Printf("[pipeline] run complete: %s", report.Summary())
	if reporter != nil {
		reporter.OnRunComplete(report)
	}
	return data, nil
}

// fetchScoreDays retrieves one score summary per date on a bounded worker
// pool. Results land in index-aligned slices, which restores date order by
// construction; per-date failures are recorded, not raised.
func (p *Pipeline) fetchScoreDays(ctx context.Context, dates []string, reporter Reporter) ([]*nhl.ScoreResponse, []error) {
	payloads := make([]*nhl.ScoreResponse, len(dates))
	errs := make([]error, len(dates))

	indexes := make(chan int)
	var done int64
	var wg sync.WaitGroup
	for w := 0; w < p.cfg.FetchWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				payloads[i], errs[i] = p.client.FetchScores(ctx, dates[i])
				fetched := int(atomic.AddInt64(&done, 1))
				if reporter != nil {
					reporter.OnDateFetched(dates[i], fetched, len(dates))
				}
			}
		}()
	}

feed:
	for i := range dates {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	return payloads, errs
}
