package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncPlayersUpserted()
	IncUpsertFailures()
	IncLeaderboardQueries()
	IncQueryFailures()
	ObserveQueryDuration(seconds float64)
	IncBoardRefreshes()
	IncStaleRefreshesDiscarded()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
