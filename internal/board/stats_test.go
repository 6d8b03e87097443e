package board

import (
	"testing"

	"github.com/Lerex702/elorank/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranked(elos ...int) []player.RankedPlayer {
	out := make([]player.RankedPlayer, len(elos))
	for i, e := range elos {
		out[i] = player.RankedPlayer{Rank: i + 1, Player: player.Player{Username: "p", Elo: e, Kills: 1000}}
	}
	return out
}

func TestSummarize(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, 0, s.TotalPlayers)
		assert.Equal(t, 0, s.AverageElo)
		assert.Nil(t, s.TopPlayer)
		assert.Equal(t, int64(0), s.TotalKills)
	})

	t.Run("totals and top player", func(t *testing.T) {
		s := Summarize(ranked(2000, 1500, 1000))
		assert.Equal(t, 3, s.TotalPlayers)
		assert.Equal(t, 1500, s.AverageElo)
		require.NotNil(t, s.TopPlayer)
		assert.Equal(t, 2000, s.TopPlayer.Elo)
		assert.Equal(t, int64(3000), s.TotalKills)
	})

	t.Run("average rounds half away from zero", func(t *testing.T) {
		assert.Equal(t, 1001, Summarize(ranked(1001, 1000)).AverageElo)
		assert.Equal(t, -2, Summarize(ranked(-1, -2)).AverageElo)
	})
}
