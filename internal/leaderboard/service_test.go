package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Lerex702/elorank/internal/changefeed"
	"github.com/Lerex702/elorank/internal/database"
	"github.com/Lerex702/elorank/internal/metrics"
	"github.com/Lerex702/elorank/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestService(store player.Store) (*Service, *changefeed.MockPublisher, *metrics.Mock) {
	pub := changefeed.NewMockPublisher()
	met := metrics.NewMock()
	svc := New(store, pub, met, Options{
		Source: "test",
		Clock:  func() time.Time { return fixedNow },
	})
	return svc, pub, met
}

func payload(uuid string, elo, kills, deaths int) []byte {
	return []byte(fmt.Sprintf(
		`{"uuid":%q,"username":"user-%s","elo":%d,"kills":%d,"deaths":%d,"highest_elo":%d,"current_streak":1}`,
		uuid, uuid, elo, kills, deaths, elo,
	))
}

func TestService_UpsertPlayer(t *testing.T) {
	t.Run("persists derived fields and publishes an insert", func(t *testing.T) {
		store := player.NewMock()
		svc, pub, met := newTestService(store)

		saved, err := svc.UpsertPlayer(context.Background(), payload("p1", 1500, 10, 4))
		require.NoError(t, err)

		assert.Equal(t, 2.5, saved.KDRatio)
		assert.Equal(t, fixedNow, saved.LastActive)
		require.Len(t, store.UpsertCalls(), 1)
		assert.Equal(t, "p1", store.UpsertCalls()[0].UUID)

		events := pub.Events()
		require.Len(t, events, 1)
		assert.Equal(t, changefeed.OpInsert, events[0].Op)
		assert.Equal(t, "p1", events[0].UUID)
		assert.Equal(t, "test", events[0].Source)
		assert.Equal(t, 1, met.PlayersUpserted())
	})

	t.Run("existing rows publish an update", func(t *testing.T) {
		store := player.NewMock()
		store.UpsertPlayerFunc = func(_ context.Context, p player.Player) (player.Player, bool, error) {
			p.CreatedAt = p.LastActive.Add(-time.Hour)
			return p, false, nil
		}
		svc, pub, _ := newTestService(store)

		_, err := svc.UpsertPlayer(context.Background(), payload("p1", 1500, 1, 1))
		require.NoError(t, err)
		require.Len(t, pub.Events(), 1)
		assert.Equal(t, changefeed.OpUpdate, pub.Events()[0].Op)
	})

	t.Run("invalid payload is a validation error and never reaches the store", func(t *testing.T) {
		store := player.NewMock()
		svc, pub, met := newTestService(store)

		_, err := svc.UpsertPlayer(context.Background(), []byte(`{"uuid":"p1"}`))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, store.UpsertCalls())
		assert.Empty(t, pub.Events())
		assert.Equal(t, 1, met.UpsertFailures())
	})

	t.Run("store failure is a persistence error", func(t *testing.T) {
		store := player.NewMock()
		boom := errors.New("disk full")
		store.UpsertPlayerFunc = func(context.Context, player.Player) (player.Player, bool, error) {
			return player.Player{}, false, boom
		}
		svc, pub, met := newTestService(store)

		_, err := svc.UpsertPlayer(context.Background(), payload("p1", 1500, 1, 1))

		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, pub.Events())
		assert.Equal(t, 1, met.UpsertFailures())
	})

	t.Run("publish failure does not fail the upsert", func(t *testing.T) {
		svc, pub, _ := newTestService(player.NewMock())
		pub.PublishFunc = func(context.Context, changefeed.Event) error { return errors.New("feed down") }

		_, err := svc.UpsertPlayer(context.Background(), payload("p1", 1500, 1, 1))
		assert.NoError(t, err)
	})
}

func TestService_GetLeaderboard_Limits(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"zero uses the default", 0, DefaultLimit},
		{"negative uses the default", -5, DefaultLimit},
		{"explicit limit is kept", 2, 2},
		{"maximum is kept", DefaultMaxLimit, DefaultMaxLimit},
		{"above maximum is clamped", DefaultMaxLimit + 1, DefaultMaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := player.NewMock()
			svc, _, _ := newTestService(store)

			_, err := svc.GetLeaderboard(context.Background(), tt.requested)
			require.NoError(t, err)
			assert.Equal(t, []int{tt.want}, store.TopPlayersCalls())
		})
	}
}

func TestService_GetLeaderboard_Failure(t *testing.T) {
	store := player.NewMock()
	store.GetTopPlayersFunc = func(context.Context, int) ([]player.Player, error) {
		return nil, errors.New("connection refused")
	}
	svc, _, met := newTestService(store)

	_, err := svc.GetLeaderboard(context.Background(), 10)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "get top players", perr.Op)
	assert.Equal(t, 1, met.QueryFailures())
	assert.Len(t, met.QueryDurations(), 1)
}

func TestService_AgainstSQLite(t *testing.T) {
	db, teardown, err := database.InitDB(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer teardown()
	store := player.New(db, database.Placeholder(database.DriverSQLite))
	svc, _, _ := newTestService(store)
	ctx := context.Background()

	t.Run("empty table is an empty list", func(t *testing.T) {
		lb, err := svc.GetLeaderboard(ctx, 0)
		require.NoError(t, err)
		assert.NotNil(t, lb.Players)
		assert.Empty(t, lb.Players)
	})

	for i, elo := range []int{1200, 2600, 900, 1800, 2100} {
		_, err := svc.UpsertPlayer(ctx, payload(fmt.Sprintf("p%d", i), elo, 5, 5))
		require.NoError(t, err)
	}

	t.Run("limit two of five", func(t *testing.T) {
		lb, err := svc.GetLeaderboard(ctx, 2)
		require.NoError(t, err)
		require.Len(t, lb.Players, 2)
		assert.Equal(t, 1, lb.Players[0].Rank)
		assert.Equal(t, 2600, lb.Players[0].Elo)
		assert.Equal(t, 2, lb.Players[1].Rank)
		assert.Equal(t, 2100, lb.Players[1].Elo)
		assert.Equal(t, fixedNow, lb.UpdatedAt)
	})

	t.Run("repeated upsert in the same instant publishes an update", func(t *testing.T) {
		pub := changefeed.NewMockPublisher()
		sameClock := New(store, pub, metrics.NewMock(), Options{Clock: func() time.Time { return fixedNow }})

		for range 2 {
			_, err := sameClock.UpsertPlayer(ctx, payload("twin", 1000, 1, 1))
			require.NoError(t, err)
		}
		events := pub.Events()
		require.Len(t, events, 2)
		assert.Equal(t, changefeed.OpInsert, events[0].Op)
		assert.Equal(t, changefeed.OpUpdate, events[1].Op)
		require.NoError(t, sameClock.DeletePlayer(ctx, "twin"))
	})

	t.Run("repeated upsert replaces the row", func(t *testing.T) {
		_, err := svc.UpsertPlayer(ctx, payload("p1", 100, 0, 3))
		require.NoError(t, err)

		lb, err := svc.GetLeaderboard(ctx, 0)
		require.NoError(t, err)
		require.Len(t, lb.Players, 5)
		last := lb.Players[4]
		assert.Equal(t, "p1", last.UUID)
		assert.Equal(t, 100, last.Elo)
		assert.Equal(t, 0.0, last.KDRatio)
	})

	t.Run("single player lookup", func(t *testing.T) {
		p, err := svc.GetPlayer(ctx, "p3")
		require.NoError(t, err)
		assert.Equal(t, 1800, p.Elo)

		_, err = svc.GetPlayer(ctx, "nobody")
		assert.ErrorIs(t, err, player.ErrNotFound)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, svc.DeletePlayer(ctx, "p1"))
		assert.ErrorIs(t, svc.DeletePlayer(ctx, "p1"), player.ErrNotFound)
	})
}
