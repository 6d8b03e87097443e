package player

import "context"

// Store defines the persistence operations for player rows.
type Store interface {
	// GetTopPlayers returns up to limit players ordered by elo descending,
	// ties broken by uuid ascending.
	GetTopPlayers(ctx context.Context, limit int) ([]Player, error)
	// GetPlayer returns ErrNotFound when the uuid is unknown.
	GetPlayer(ctx context.Context, uuid string) (*Player, error)
	// UpsertPlayer inserts the row or replaces every mutable column of the
	// row with the same uuid, and returns the row as persisted. inserted is
	// true only when no row with that uuid existed.
	UpsertPlayer(ctx context.Context, p Player) (saved Player, inserted bool, err error)
	DeletePlayer(ctx context.Context, uuid string) error
	CountPlayers(ctx context.Context) (int, error)
}
