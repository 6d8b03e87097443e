package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	PlayersUpserted         prometheus.Counter
	UpsertFailures          prometheus.Counter
	LeaderboardQueries      prometheus.Counter
	QueryFailures           prometheus.Counter
	QueryDuration           prometheus.Histogram
	BoardRefreshes          prometheus.Counter
	StaleRefreshesDiscarded prometheus.Counter
	SlackNotifSent          prometheus.Counter
	SlackNotifFailed        prometheus.Counter
	StartupTimeSeconds      prometheus.Gauge
}
