package board

import (
	"math"

	"github.com/Lerex702/elorank/internal/player"
)

// Summarize computes the headline numbers for a ranked list. The first
// entry is the top player.
func Summarize(players []player.RankedPlayer) Summary {
	if len(players) == 0 {
		return Summary{}
	}

	var eloSum, kills int64
	for _, p := range players {
		eloSum += int64(p.Elo)
		kills += int64(p.Kills)
	}

	top := players[0]
	// math.Round goes half away from zero, so -1.5 averages to -2, not -1.
	return Summary{
		TotalPlayers: len(players),
		AverageElo:   int(math.Round(float64(eloSum) / float64(len(players)))),
		TopPlayer:    &top,
		TotalKills:   kills,
	}
}
