// Package season coordinates pipeline runs and holds the latest snapshot
// for the API and dashboard to read.
package season

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/fortuna/rinkside/internal/pipeline"
)

// ErrRefreshInProgress is returned when a refresh is requested while one is
// already running. Runs are single-flight: the tables are one unit and a
// second concurrent run could only interleave with the first.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// Service owns the current SeasonData snapshot. Snapshots are immutable;
// a refresh swaps the pointer under the lock and readers keep whatever
// snapshot they were handed.
type Service struct {
	pipe   *pipeline.Pipeline
	logger *log.Logger

	mu         sync.RWMutex
	data       *pipeline.SeasonData
	refreshing bool

	repMu     sync.Mutex
	reporters []pipeline.Reporter
}

// NewService wires a service around a pipeline.
func NewService(pipe *pipeline.Pipeline, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.Writer(), "[season] ", log.LstdFlags)
	}
	return &Service{pipe: pipe, logger: logger}
}

// Config exposes the pipeline's effective configuration.
func (s *Service) Config() pipeline.Config {
	return s.pipe.Config()
}

// AddReporter registers an additional progress sink for future runs.
func (s *Service) AddReporter(r pipeline.Reporter) {
	s.repMu.Lock()
	defer s.repMu.Unlock()
	s.reporters = append(s.reporters, r)
}

// Snapshot returns the latest ingested data, or nil before the first
// successful run.
func (s *Service) Snapshot() *pipeline.SeasonData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Refreshing reports whether a run is currently active.
func (s *Service) Refreshing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshing
}

// Refresh runs the pipeline synchronously and installs the new snapshot.
func (s *Service) Refresh(ctx context.Context) (*pipeline.SeasonData, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	return s.run(ctx)
}

// StartRefresh launches a run in the background. Progress reaches the
// registered reporters; the snapshot swaps in when the run completes.
func (s *Service) StartRefresh(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	go func() {
		if _, err := s.run(ctx); err != nil {
			s.logger.Printf("background refresh failed: %v", err)
		}
	}()
	return nil
}

func (s *Service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refreshing {
		return ErrRefreshInProgress
	}
	s.refreshing = true
	return nil
}

func (s *Service) run(ctx context.Context) (*pipeline.SeasonData, error) {
	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.mu.Unlock()
	}()

	data, err := s.pipe.Run(ctx, s.fanout())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()

	s.logger.Printf("snapshot installed: %s", data.Report.Summary())
	return data, nil
}

func (s *Service) fanout() pipeline.Reporter {
	s.repMu.Lock()
	targets := make([]pipeline.Reporter, len(s.reporters))
	copy(targets, s.reporters)
	s.repMu.Unlock()
	return &fanoutReporter{targets: targets}
}

// fanoutReporter forwards each callback to every registered sink.
type fanoutReporter struct {
	targets []pipeline.Reporter
}

func (f *fanoutReporter) OnRunStart(totalDates int) {
	for _, t := range f.targets {
		t.OnRunStart(totalDates)
	}
}

func (f *fanoutReporter) OnDateFetched(date string, fetched, total int) {
	for _, t := range f.targets {
		t.OnDateFetched(date, fetched, total)
	}
}

func (f *fanoutReporter) OnRunComplete(report pipeline.Report) {
	for _, t := range f.targets {
		t.OnRunComplete(report)
	}
}

func (f *fanoutReporter) OnRunError(err error) {
	for _, t := range f.targets {
		t.OnRunError(err)
	}
}
