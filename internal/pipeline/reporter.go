package pipeline

// Reporter receives lifecycle callbacks from a pipeline run. Date fetches
// can run concurrently, so implementations must be safe for concurrent use.
// A nil Reporter is always allowed.
type Reporter interface {
	OnRunStart(totalDates int)
	// OnDateFetched fires once per resolved date as its score summary
	// arrives. fetched counts completed dates, not date order.
	OnDateFetched(date string, fetched, total int)
	OnRunComplete(report Report)
	OnRunError(err error)
}
