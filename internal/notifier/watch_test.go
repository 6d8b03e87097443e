package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/Lerex702/elorank/internal/board"
	"github.com/Lerex702/elorank/internal/changefeed"
	"github.com/Lerex702/elorank/internal/leaderboard"
	"github.com/Lerex702/elorank/internal/metrics"
	"github.com/Lerex702/elorank/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceFetcher returns its snapshots in order, repeating the last one.
type sequenceFetcher struct {
	next      chan []string
	lastNames []string
}

func (f *sequenceFetcher) GetLeaderboard(ctx context.Context, _ int) (leaderboard.Leaderboard, error) {
	select {
	case names := <-f.next:
		f.lastNames = names
	case <-ctx.Done():
		return leaderboard.Leaderboard{}, ctx.Err()
	}
	players := make([]player.RankedPlayer, len(f.lastNames))
	for i, n := range f.lastNames {
		players[i] = player.RankedPlayer{Rank: i + 1, Player: player.Player{UUID: n, Username: n, Elo: 2000 - i}}
	}
	return leaderboard.Leaderboard{Players: players}, nil
}

func TestWatchLeader_AnnouncesOnlyChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &sequenceFetcher{next: make(chan []string)}
	b := board.New(f, metrics.NewMock(), board.Options{})
	events := make(chan changefeed.Event)
	go func() { _ = b.Run(ctx, events) }()

	n := NewMock()
	go WatchLeader(ctx, b, n, false)
	time.Sleep(20 * time.Millisecond)

	step := func(names ...string) {
		want := b.View().Version + 1
		f.next <- names
		require.Eventually(t, func() bool { return b.View().Version >= want }, time.Second, 5*time.Millisecond)
		time.Sleep(20 * time.Millisecond)
	}

	step("alice", "bob")
	events <- changefeed.Event{ID: "1"}
	step("alice", "carol")
	events <- changefeed.Event{ID: "2"}
	step("bob", "alice")

	calls := n.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "bob", calls[0].Leader.UUID)
	require.NotNil(t, calls[0].Previous)
	assert.Equal(t, "alice", calls[0].Previous.UUID)
}
