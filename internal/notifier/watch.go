package notifier

import (
	"context"

	"github.com/Lerex702/elorank/internal/board"
	"github.com/Lerex702/elorank/internal/player"
	"github.com/charmbracelet/log"
)

// WatchLeader announces every change of the rank 1 player on b until ctx is
// done. The leader seen on the first refresh is recorded, not announced.
func WatchLeader(ctx context.Context, b *board.Board, n Notifier, dryRun bool) {
	changes, cancel := b.Subscribe()
	defer cancel()

	var (
		current *player.RankedPlayer
		primed  bool
	)
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			v := b.View()
			if v.Loading || v.Notice != "" {
				continue
			}
			top := v.Summary.TopPlayer
			if !primed {
				current, primed = top, true
				continue
			}
			if top == nil || (current != nil && current.UUID == top.UUID) {
				current = top
				continue
			}
			log.Info("New leaderboard leader", "uuid", top.UUID, "username", top.Username, "elo", top.Elo)
			if err := n.SendNewLeader(*top, current, dryRun); err != nil {
				log.Error("Failed to announce new leader", "uuid", top.UUID, "error", err)
			}
			current = top
		}
	}
}
