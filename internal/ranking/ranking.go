// Package ranking orders players by Elo and numbers them.
package ranking

import (
	"cmp"
	"slices"

	"github.com/Lerex702/elorank/internal/player"
)

// AssignRanks returns the players sorted by elo descending with 1-based
// ranks. Equal ratings are ordered by uuid ascending, the same tie-break the
// store uses, so ranks stay stable between queries. Ranks are never shared.
// The input slice is left untouched.
func AssignRanks(players []player.Player) []player.RankedPlayer {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, Compare)

	ranked := make([]player.RankedPlayer, len(sorted))
	for i, p := range sorted {
		ranked[i] = player.RankedPlayer{Rank: i + 1, Player: p}
	}
	return ranked
}

// Compare orders a before b when a is rated higher, or equal and has the
// smaller uuid.
func Compare(a, b player.Player) int {
	if c := cmp.Compare(b.Elo, a.Elo); c != 0 {
		return c
	}
	return cmp.Compare(a.UUID, b.UUID)
}
