package notifier

import "github.com/Lerex702/elorank/internal/player"

// Notifier defines a high-level interface for announcing leaderboard events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendNewLeader announces that leader now holds rank 1. previous is nil
	// when nobody held it before.
	SendNewLeader(leader player.RankedPlayer, previous *player.RankedPlayer, dryRun bool) error
}
