package board

import (
	"context"

	"github.com/Lerex702/elorank/internal/leaderboard"
)

// Fetcher reads a ranked snapshot. *leaderboard.Service satisfies it.
type Fetcher interface {
	GetLeaderboard(ctx context.Context, limit int) (leaderboard.Leaderboard, error)
}
