package player_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Lerex702/elorank/internal/database"
	"github.com/Lerex702/elorank/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (player.Store, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(database.DriverSQLite, ":memory:")
	require.NoError(t, err)

	store := player.New(db, database.Placeholder(database.DriverSQLite))
	return store, db, dbTeardown
}

func newPlayer(uuid, name string, elo int, at time.Time) player.Player {
	return player.Update{
		UUID:       uuid,
		Username:   name,
		Elo:        elo,
		HighestElo: elo,
		Kills:      10,
		Deaths:     4,
	}.ToPlayer(at)
}

func TestUpsertPlayer_CreatesRow(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	saved, inserted, err := store.UpsertPlayer(ctx, newPlayer("p1", "Alice", 1500, now))
	require.NoError(t, err)
	assert.True(t, inserted)

	assert.Equal(t, "p1", saved.UUID)
	assert.Equal(t, "Alice", saved.Username)
	assert.Equal(t, 2.5, saved.KDRatio)
	assert.True(t, now.Equal(saved.LastActive))
	assert.True(t, now.Equal(saved.CreatedAt), "created_at is stamped on first insert")

	count, err := store.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpsertPlayer_ReplacesExistingRow(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	_, _, err := store.UpsertPlayer(ctx, newPlayer("p1", "Alice", 1500, first))
	require.NoError(t, err)

	replacement := player.Update{
		UUID:          "p1",
		Username:      "Alice2",
		Elo:           1450,
		HighestElo:    1500,
		Kills:         12,
		Deaths:        0,
		CurrentStreak: -2,
	}.ToPlayer(second)
	saved, inserted, err := store.UpsertPlayer(ctx, replacement)
	require.NoError(t, err)
	assert.False(t, inserted)

	assert.Equal(t, "Alice2", saved.Username)
	assert.Equal(t, 1450, saved.Elo)
	assert.Equal(t, 12, saved.Kills)
	assert.Equal(t, 0, saved.Deaths)
	assert.Equal(t, 12.0, saved.KDRatio)
	assert.Equal(t, -2, saved.CurrentStreak)
	assert.True(t, second.Equal(saved.LastActive), "last_active moves forward")
	assert.True(t, first.Equal(saved.CreatedAt), "created_at survives the replace")

	count, err := store.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "an existing uuid must not create a second row")

	got, err := store.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, saved, *got)
}

func TestUpsertPlayer_ReportsInsertWithinTheSameMillisecond(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, inserted, err := store.UpsertPlayer(ctx, newPlayer("p1", "Alice", 1500, now))
	require.NoError(t, err)
	assert.True(t, inserted)

	saved, inserted, err := store.UpsertPlayer(ctx, newPlayer("p1", "Alice", 1550, now))
	require.NoError(t, err)
	assert.False(t, inserted, "an existing uuid is an update even when the timestamps match")
	assert.Equal(t, 1550, saved.Elo)
	assert.True(t, now.Equal(saved.CreatedAt))
}

func TestGetTopPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	now := time.Now().UTC()

	for _, p := range []player.Player{
		newPlayer("a", "A", 1200, now),
		newPlayer("b", "B", 2600, now),
		newPlayer("c", "C", 900, now),
		newPlayer("d", "D", 1800, now),
		newPlayer("e", "E", 2100, now),
	} {
		_, _, err := store.UpsertPlayer(ctx, p)
		require.NoError(t, err)
	}

	t.Run("orders by elo and applies the limit", func(t *testing.T) {
		players, err := store.GetTopPlayers(ctx, 2)
		require.NoError(t, err)
		require.Len(t, players, 2)
		assert.Equal(t, "b", players[0].UUID)
		assert.Equal(t, "e", players[1].UUID)
	})

	t.Run("returns everything under a large limit", func(t *testing.T) {
		players, err := store.GetTopPlayers(ctx, 100)
		require.NoError(t, err)
		require.Len(t, players, 5)
		for i := 1; i < len(players); i++ {
			assert.GreaterOrEqual(t, players[i-1].Elo, players[i].Elo)
		}
	})
}

func TestGetTopPlayers_TiesBrokenByUUID(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()
	now := time.Now().UTC()

	for _, id := range []string{"zed", "amy", "kim"} {
		_, _, err := store.UpsertPlayer(ctx, newPlayer(id, id, 1500, now))
		require.NoError(t, err)
	}

	players, err := store.GetTopPlayers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, []string{"amy", "kim", "zed"}, []string{players[0].UUID, players[1].UUID, players[2].UUID})
}

func TestGetTopPlayers_EmptyTable(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	players, err := store.GetTopPlayers(context.Background(), 100)
	require.NoError(t, err)
	assert.NotNil(t, players)
	assert.Empty(t, players)
}

func TestGetPlayer_NotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetPlayer(context.Background(), "missing")
	assert.ErrorIs(t, err, player.ErrNotFound)
}

func TestDeletePlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	_, _, err := store.UpsertPlayer(ctx, newPlayer("p1", "Alice", 1500, time.Now()))
	require.NoError(t, err)

	require.NoError(t, store.DeletePlayer(ctx, "p1"))
	assert.ErrorIs(t, store.DeletePlayer(ctx, "p1"), player.ErrNotFound)

	count, err := store.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStore_FailsOnClosedDatabase(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	require.NoError(t, db.Close())

	_, err := store.GetTopPlayers(context.Background(), 10)
	assert.Error(t, err)

	_, _, err = store.UpsertPlayer(context.Background(), newPlayer("p1", "Alice", 1500, time.Now()))
	assert.Error(t, err)
}
