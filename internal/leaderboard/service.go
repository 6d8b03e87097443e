package leaderboard

import (
	"context"
	"errors"
	"time"

	"github.com/Lerex702/elorank/internal/changefeed"
	"github.com/Lerex702/elorank/internal/metrics"
	"github.com/Lerex702/elorank/internal/player"
	"github.com/Lerex702/elorank/internal/ranking"
	"github.com/charmbracelet/log"
)

// New creates a new Service.
func New(store player.Store, publisher changefeed.Publisher, metrics metrics.Metrics, opts Options) *Service {
	s := &Service{
		store:        store,
		publisher:    publisher,
		metrics:      metrics,
		defaultLimit: opts.DefaultLimit,
		maxLimit:     opts.MaxLimit,
		queryTimeout: opts.QueryTimeout,
		source:       opts.Source,
		now:          opts.Clock,
	}
	if s.defaultLimit <= 0 {
		s.defaultLimit = DefaultLimit
	}
	if s.maxLimit <= 0 {
		s.maxLimit = DefaultMaxLimit
	}
	if s.defaultLimit > s.maxLimit {
		s.defaultLimit = s.maxLimit
	}
	if s.queryTimeout <= 0 {
		s.queryTimeout = DefaultQueryTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// UpsertPlayer validates a raw JSON payload, derives kd_ratio and
// last_active, and writes the full row. The returned player is the row as
// persisted.
func (s *Service) UpsertPlayer(ctx context.Context, payload []byte) (player.Player, error) {
	update, err := player.DecodeUpdate(payload)
	if err != nil {
		s.metrics.IncUpsertFailures()
		return player.Player{}, &ValidationError{Err: err}
	}

	p := update.ToPlayer(s.now().UTC())

	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	saved, inserted, err := s.store.UpsertPlayer(qctx, p)
	if err != nil {
		s.metrics.IncUpsertFailures()
		return player.Player{}, &PersistenceError{Op: "upsert player", Err: err}
	}
	s.metrics.IncPlayersUpserted()

	op := changefeed.OpUpdate
	if inserted {
		op = changefeed.OpInsert
	}
	log.FromContext(ctx).Info("Player upserted", "uuid", saved.UUID, "username", saved.Username, "elo", saved.Elo, "op", op)
	s.publish(ctx, op, saved.UUID)
	return saved, nil
}

// DeletePlayer removes a player and announces the change.
func (s *Service) DeletePlayer(ctx context.Context, uuid string) error {
	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := s.store.DeletePlayer(qctx, uuid); err != nil {
		if errors.Is(err, player.ErrNotFound) {
			return err
		}
		return &PersistenceError{Op: "delete player", Err: err}
	}
	log.FromContext(ctx).Info("Player deleted", "uuid", uuid)
	s.publish(ctx, changefeed.OpDelete, uuid)
	return nil
}

// GetPlayer looks up a single player. Unknown uuids return player.ErrNotFound.
func (s *Service) GetPlayer(ctx context.Context, uuid string) (*player.Player, error) {
	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	p, err := s.store.GetPlayer(qctx, uuid)
	if err != nil {
		if errors.Is(err, player.ErrNotFound) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "get player", Err: err}
	}
	return p, nil
}

// GetLeaderboard returns the top players with ranks attached. limit <= 0
// selects the default and anything above the maximum is clamped.
func (s *Service) GetLeaderboard(ctx context.Context, limit int) (Leaderboard, error) {
	limit = s.EffectiveLimit(limit)
	s.metrics.IncLeaderboardQueries()

	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	start := time.Now()
	players, err := s.store.GetTopPlayers(qctx, limit)
	s.metrics.ObserveQueryDuration(time.Since(start).Seconds())
	if err != nil {
		s.metrics.IncQueryFailures()
		return Leaderboard{}, &PersistenceError{Op: "get top players", Err: err}
	}

	log.FromContext(ctx).Debug("Leaderboard fetched", "limit", limit, "count", len(players))
	return Leaderboard{
		Players:   ranking.AssignRanks(players),
		UpdatedAt: s.now().UTC(),
	}, nil
}

// EffectiveLimit resolves a requested limit against the configured bounds.
func (s *Service) EffectiveLimit(limit int) int {
	switch {
	case limit <= 0:
		return s.defaultLimit
	case limit > s.maxLimit:
		return s.maxLimit
	default:
		return limit
	}
}

// publish never fails the caller; feed errors are only logged.
func (s *Service) publish(ctx context.Context, op changefeed.Op, uuid string) {
	if s.publisher == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.queryTimeout)
	defer cancel()
	e := changefeed.NewEvent(op, uuid, s.source, s.now().UTC())
	if err := s.publisher.Publish(pctx, e); err != nil {
		log.Error("Failed to publish change event", "uuid", uuid, "op", op, "error", err)
	}
}
