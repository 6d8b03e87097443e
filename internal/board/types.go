package board

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Lerex702/elorank/internal/metrics"
	"github.com/Lerex702/elorank/internal/player"
)

// FailureNotice is shown above the last good table when a refresh fails.
const FailureNotice = "Failed to load leaderboard data"

const DefaultRefreshTimeout = 10 * time.Second

// Options tunes a Board.
type Options struct {
	// Limit is passed to every fetch; zero lets the fetcher pick its default.
	Limit          int
	RefreshTimeout time.Duration
}

// Summary holds the four headline numbers shown above the table.
type Summary struct {
	TotalPlayers int
	AverageElo   int
	TopPlayer    *player.RankedPlayer
	TotalKills   int64
}

// View is an immutable copy of what the page should show.
type View struct {
	Loading   bool
	Players   []player.RankedPlayer
	Summary   Summary
	UpdatedAt time.Time
	Version   uint64
	Notice    string
}

// Board keeps the latest leaderboard snapshot current as change events
// arrive.
type Board struct {
	fetcher Fetcher
	metrics metrics.Metrics
	limit   int
	timeout time.Duration

	seq atomic.Uint64
	wg  sync.WaitGroup

	mu         sync.RWMutex
	appliedSeq uint64
	loading    bool
	players    []player.RankedPlayer
	summary    Summary
	updatedAt  time.Time
	version    uint64
	notice     string

	watchMu     sync.Mutex
	watchers    map[int]chan struct{}
	nextWatcher int
}
