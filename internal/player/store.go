package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
)

var playerColumns = []string{
	"uuid", "username", "elo", "highest_elo", "kills", "deaths",
	"kd_ratio", "current_streak", "last_active", "created_at",
}

// New creates a new Store. placeholder must match the driver behind db
// (sq.Question for SQLite, sq.Dollar for Postgres).
func New(db *sql.DB, placeholder sq.PlaceholderFormat) Store {
	return &store{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// GetTopPlayers retrieves the highest rated players. Ordering happens in the
// database so the limit applies to the sorted set.
func (s *store) GetTopPlayers(ctx context.Context, limit int) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := s.builder.
		Select(playerColumns...).
		From("players").
		OrderBy("elo DESC", "uuid ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build leaderboard query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query top players: %w", err)
	}
	defer rows.Close()

	players := make([]Player, 0, limit)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player row: %w", err)
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player rows: %w", err)
	}
	log.Debug("Fetched top players", "limit", limit, "count", len(players))
	return players, nil
}

// GetPlayer retrieves a single player by uuid.
func (s *store) GetPlayer(ctx context.Context, uuid string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := s.builder.
		Select(playerColumns...).
		From("players").
		Where(sq.Eq{"uuid": uuid}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build player query: %w", err)
	}

	p, err := scanPlayer(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player %s: %w", uuid, err)
	}
	return p, nil
}

// UpsertPlayer writes the whole row keyed by uuid. An existing row has every
// column except created_at replaced, so a repeated uuid never merges
// partially. inserted reports whether the uuid was new.
func (s *store) UpsertPlayer(ctx context.Context, p Player) (saved Player, inserted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lastActive := p.LastActive.UnixMilli()
	returning := "RETURNING " + strings.Join(playerColumns, ", ")

	insert, insertArgs, err := s.builder.
		Insert("players").
		Columns(playerColumns...).
		Values(p.UUID, p.Username, p.Elo, p.HighestElo, p.Kills, p.Deaths,
			p.KDRatio, p.CurrentStreak, lastActive, lastActive).
		Suffix("ON CONFLICT(uuid) DO NOTHING " + returning).
		ToSql()
	if err != nil {
		return Player{}, false, fmt.Errorf("build insert: %w", err)
	}
	update, updateArgs, err := s.builder.
		Update("players").
		SetMap(map[string]any{
			"username":       p.Username,
			"elo":            p.Elo,
			"highest_elo":    p.HighestElo,
			"kills":          p.Kills,
			"deaths":         p.Deaths,
			"kd_ratio":       p.KDRatio,
			"current_streak": p.CurrentStreak,
			"last_active":    lastActive,
		}).
		Where(sq.Eq{"uuid": p.UUID}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return Player{}, false, fmt.Errorf("build update: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Player{}, false, fmt.Errorf("begin upsert transaction: %w", err)
	}
	defer tx.Rollback()

	// DO NOTHING yields no row when the uuid exists; that row is updated instead.
	row, err := scanPlayer(tx.QueryRowContext(ctx, insert, insertArgs...))
	inserted = err == nil
	if errors.Is(err, sql.ErrNoRows) {
		row, err = scanPlayer(tx.QueryRowContext(ctx, update, updateArgs...))
	}
	if err != nil {
		return Player{}, false, fmt.Errorf("upsert player %s: %w", p.UUID, err)
	}
	if err := tx.Commit(); err != nil {
		return Player{}, false, fmt.Errorf("commit upsert transaction: %w", err)
	}
	return *row, inserted, nil
}

// DeletePlayer removes a player row.
func (s *store) DeletePlayer(ctx context.Context, uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args, err := s.builder.Delete("players").Where(sq.Eq{"uuid": uuid}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete player %s: %w", uuid, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete player %s: %w", uuid, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountPlayers returns the number of player rows.
func (s *store) CountPlayers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := s.builder.Select("COUNT(*)").From("players").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return count, nil
}

// scanPlayer is a helper function to scan a single player row.
func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var lastActive, createdAt int64

	err := scanner.Scan(
		&p.UUID, &p.Username, &p.Elo, &p.HighestElo, &p.Kills, &p.Deaths,
		&p.KDRatio, &p.CurrentStreak, &lastActive, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	p.LastActive = time.UnixMilli(lastActive).UTC()
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &p, nil
}
