package http

import (
	"net/http"

	"github.com/Lerex702/elorank/internal/board"
	"github.com/Lerex702/elorank/internal/config"
	"github.com/Lerex702/elorank/internal/http/handlers"
)

type Server struct {
	Leaderboard    handlers.LeaderboardService
	Board          *board.Board
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
