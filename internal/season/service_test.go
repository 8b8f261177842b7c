package season

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/rinkside/internal/nhl"
	"github.com/fortuna/rinkside/internal/pipeline"
)

// slowAPI serves a one-game season and can stall score responses so tests
// can observe an in-flight refresh.
func slowAPI(t *testing.T, delay time.Duration) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/club-schedule-season/"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"games": []map[string]interface{}{{"id": 100, "gameDate": "2023-10-11"}},
			})
		case strings.HasPrefix(r.URL.Path, "/score/"):
			time.Sleep(delay)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"games": []map[string]interface{}{{
					"id":       100,
					"gameDate": "2023-10-11",
					"awayTeam": map[string]interface{}{"abbrev": "EDM", "score": 4},
					"homeTeam": map[string]interface{}{"abbrev": "VAN", "score": 1},
					"goals":    []map[string]interface{}{},
				}},
			})
		case strings.HasPrefix(r.URL.Path, "/roster/"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"forwards": []map[string]interface{}{{
					"firstName": map[string]string{"default": "Connor"},
					"lastName":  map[string]string{"default": "McDavid"},
				}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func newService(t *testing.T, url string) *Service {
	t.Helper()
	pipe := pipeline.New(nhl.New(url), pipeline.Config{
		TeamAbbrev: "EDM",
		SeasonID:   "20232024",
		AnchorDate: "2023-10-11",
		WindowSize: 1,
	})
	return NewService(pipe, nil)
}

func TestRefreshInstallsSnapshot(t *testing.T) {
	srv := slowAPI(t, 0)
	defer srv.Close()

	svc := newService(t, srv.URL)
	assert.Nil(t, svc.Snapshot(), "no data before the first run")

	data, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Same(t, data, svc.Snapshot())
	assert.Equal(t, 1, data.Report.GamesIngested)
	assert.False(t, svc.Refreshing())
}

func TestConcurrentRefreshRejected(t *testing.T) {
	srv := slowAPI(t, 150*time.Millisecond)
	defer srv.Close()

	svc := newService(t, srv.URL)

	var wg sync.WaitGroup
	wg.Add(1)
	errs := make(chan error, 1)
	go func() {
		defer wg.Done()
		_, err := svc.Refresh(context.Background())
		errs <- err
	}()

	// Wait until the first run is visibly in flight.
	require.Eventually(t, svc.Refreshing, time.Second, 5*time.Millisecond)

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrRefreshInProgress)
	assert.ErrorIs(t, svc.StartRefresh(context.Background()), ErrRefreshInProgress)

	wg.Wait()
	require.NoError(t, <-errs)
	assert.NotNil(t, svc.Snapshot())
}

func TestReporterFanout(t *testing.T) {
	srv := slowAPI(t, 0)
	defer srv.Close()

	svc := newService(t, srv.URL)

	var mu sync.Mutex
	calls := map[string]int{}
	svc.AddReporter(&funcReporter{
		onStart:    func(int) { mu.Lock(); calls["start"]++; mu.Unlock() },
		onFetched:  func(string, int, int) { mu.Lock(); calls["fetched"]++; mu.Unlock() },
		onComplete: func(pipeline.Report) { mu.Lock(); calls["complete"]++; mu.Unlock() },
	})

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls["start"])
	assert.Equal(t, 1, calls["fetched"])
	assert.Equal(t, 1, calls["complete"])
}

type funcReporter struct {
	onStart    func(int)
	onFetched  func(string, int, int)
	onComplete func(pipeline.Report)
}

func (f *funcReporter) OnRunStart(total int) {
	if f.onStart != nil {
		f.onStart(total)
	}
}

func (f *funcReporter) OnDateFetched(date string, fetched, total int) {
	if f.onFetched != nil {
		f.onFetched(date, fetched, total)
	}
}

func (f *funcReporter) OnRunComplete(report pipeline.Report) {
	if f.onComplete != nil {
		f.onComplete(report)
	}
}

func (f *funcReporter) OnRunError(error) {}
