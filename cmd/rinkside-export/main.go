package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/fortuna/rinkside/internal/export"
	"github.com/fortuna/rinkside/internal/nhl"
	"github.com/fortuna/rinkside/internal/pipeline"
)

const (
	appName    = "rinkside-export"
	appVersion = "1.0.0"
)

func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	var (
		team    = flag.String("team", getEnv("TEAM_ABBREV", "EDM"), "Tracked team abbreviation")
		season  = flag.String("season", getEnv("SEASON_ID", "20232024"), "Season identifier (e.g. 20232024)")
		anchor  = flag.String("anchor", getEnv("ANCHOR_DATE", "2023-10-11"), "First regular-season game date (YYYY-MM-DD)")
		window  = flag.Int("window", 82, "Number of game dates to ingest")
		workers = flag.Int("workers", 4, "Concurrent score fetches")
		apiBase = flag.String("api-url", getEnv("NHL_API_BASE", nhl.BaseURL), "NHL API base URL")
		outDir  = flag.String("out", ".", "Directory to write CSV files into")
	)

	flag.Parse()

	pipe := pipeline.New(nhl.New(*apiBase), pipeline.Config{
		TeamAbbrev:   *team,
		SeasonID:     *season,
		AnchorDate:   *anchor,
		WindowSize:   *window,
		FetchWorkers: *workers,
	})

	data, err := pipe.Run(context.Background(), &consoleReporter{})
	if err != nil {
		log.Fatalf("ingestion failed: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	writeFile(*outDir, export.GamesFilename, func(f *os.File) error {
		return export.WriteGames(f, data.Games)
	})
	writeFile(*outDir, export.GoalsFilename, func(f *os.File) error {
		return export.WriteGoals(f, data.Goals)
	})
	writeFile(*outDir, export.RosterFilename, func(f *os.File) error {
		return export.WriteRoster(f, data.Roster)
	})

	log.Println("✓ Export completed successfully")
}

func writeFile(dir, name string, write func(*os.File) error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		log.Fatalf("write %s: %v", path, err)
	}
	log.Printf("✓ Wrote %s", path)
}

type consoleReporter struct{}

func (c *consoleReporter) OnRunStart(totalDates int) {
	log.Printf("Ingesting %d game dates", totalDates)
}

func (c *consoleReporter) OnDateFetched(date string, fetched, total int) {
	log.Printf("[%d/%d] %s", fetched, total, date)
}

func (c *consoleReporter) OnRunComplete(report pipeline.Report) {
	log.Printf("Run complete: %s", report.Summary())
}

func (c *consoleReporter) OnRunError(err error) {
	log.Printf("Run error: %v", err)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
