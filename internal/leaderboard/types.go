package leaderboard

import (
	"time"

	"github.com/Lerex702/elorank/internal/changefeed"
	"github.com/Lerex702/elorank/internal/metrics"
	"github.com/Lerex702/elorank/internal/player"
)

const (
	DefaultLimit        = 100
	DefaultMaxLimit     = 500
	DefaultQueryTimeout = 5 * time.Second
)

// Options tunes a Service. Zero values fall back to the package defaults.
type Options struct {
	DefaultLimit int
	MaxLimit     int
	QueryTimeout time.Duration
	// Source identifies this instance on published change events.
	Source string
	Clock  func() time.Time
}

// Service implements the player write path and the leaderboard read path.
type Service struct {
	store     player.Store
	publisher changefeed.Publisher
	metrics   metrics.Metrics

	defaultLimit int
	maxLimit     int
	queryTimeout time.Duration
	source       string
	now          func() time.Time
}

// Leaderboard is one ranked snapshot of the top players.
type Leaderboard struct {
	Players   []player.RankedPlayer `json:"players"`
	UpdatedAt time.Time             `json:"updated_at"`
}
