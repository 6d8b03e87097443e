package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PlayersUpserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elorank_players_upserted_total",
			Help: "The total number of player rows written through the upsert endpoint.",
		}),
		UpsertFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elorank_upsert_failures_total",
			Help: "The total number of rejected or failed player upserts.",
		}),
		LeaderboardQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elorank_leaderboard_queries_total",
			Help: "The total number of leaderboard reads.",
		}),
		QueryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elorank_query_failures_total",
			Help: "The total number of leaderboard reads that failed.",
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "elorank_query_duration_seconds",
			Help:    "The duration of leaderboard reads against the store.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		BoardRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elorank_board_refreshes_total",
			Help: "The total number of leaderboard page refreshes applied.",
		}),
		StaleRefreshesDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elorank_board_stale_discarded_total",
			Help: "The total number of refresh results dropped because a newer one was already shown.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elorank_slack_notifications_sent_total",
			Help: "The total number of Slack notifications sent successfully.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elorank_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "elorank_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PlayersUpserted,
		s.UpsertFailures,
		s.LeaderboardQueries,
		s.QueryFailures,
		s.QueryDuration,
		s.BoardRefreshes,
		s.StaleRefreshesDiscarded,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPlayersUpserted() {
	s.PlayersUpserted.Inc()
}

func (s *Service) IncUpsertFailures() {
	s.UpsertFailures.Inc()
}

func (s *Service) IncLeaderboardQueries() {
	s.LeaderboardQueries.Inc()
}

func (s *Service) IncQueryFailures() {
	s.QueryFailures.Inc()
}

func (s *Service) ObserveQueryDuration(seconds float64) {
	s.QueryDuration.Observe(seconds)
}

func (s *Service) IncBoardRefreshes() {
	s.BoardRefreshes.Inc()
}

func (s *Service) IncStaleRefreshesDiscarded() {
	s.StaleRefreshesDiscarded.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
