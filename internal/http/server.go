package http

import (
	"net/http"

	"github.com/Lerex702/elorank/internal/board"
	"github.com/Lerex702/elorank/internal/config"
	"github.com/Lerex702/elorank/internal/http/handlers"
	"github.com/charmbracelet/log"
)

func NewServer(svc handlers.LeaderboardService, b *board.Board, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Leaderboard:    svc,
		Board:          b,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(handlers.LeaderboardHandler(s.Leaderboard), paramsMiddleware, corsMiddleware))
	s.Router.Handle("/players", Chain(handlers.UpsertPlayerHandler(s.Leaderboard), paramsMiddleware, corsMiddleware))
	s.Router.Handle("/events", Chain(handlers.EventsHandler(s.Board), paramsMiddleware))
	s.Router.Handle("/", Chain(handlers.PageHandler(s.Board), paramsMiddleware))

	if s.Cfg.Slack.SigningSecret != "" {
		s.Router.Handle("/slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Leaderboard), paramsMiddleware, slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)))
	} else {
		log.Info("SLACK_SIGNING_SECRET not set, Slack commands disabled")
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
