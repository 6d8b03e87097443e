package handlers

import (
	"context"

	"github.com/Lerex702/elorank/internal/leaderboard"
	"github.com/Lerex702/elorank/internal/player"
)

// LeaderboardService is the subset of *leaderboard.Service the handlers use.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) (leaderboard.Leaderboard, error)
	UpsertPlayer(ctx context.Context, payload []byte) (player.Player, error)
	GetPlayer(ctx context.Context, uuid string) (*player.Player, error)
}
