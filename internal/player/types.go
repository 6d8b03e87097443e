package player

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// ErrNotFound is returned when no player row matches the requested uuid.
var ErrNotFound = errors.New("player not found")

// store handles all database operations for players.
type store struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	mu      sync.RWMutex
}

// Player is a persisted row of the players table.
type Player struct {
	UUID          string    `json:"uuid"`
	Username      string    `json:"username"`
	Elo           int       `json:"elo"`
	HighestElo    int       `json:"highest_elo"`
	Kills         int       `json:"kills"`
	Deaths        int       `json:"deaths"`
	KDRatio       float64   `json:"kd_ratio"`
	CurrentStreak int       `json:"current_streak"`
	LastActive    time.Time `json:"last_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// RankedPlayer is a Player with its position in an Elo-ordered list. It is
// built per query and never stored.
type RankedPlayer struct {
	Rank int `json:"rank"`
	Player
}

// Update is a validated player update as sent by the game server.
type Update struct {
	UUID          string
	Username      string
	Elo           int
	Kills         int
	Deaths        int
	HighestElo    int
	CurrentStreak int
}
