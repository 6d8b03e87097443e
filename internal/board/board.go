// Package board holds the live leaderboard shown on the web page and keeps
// it fresh from the change feed.
package board

import (
	"context"

	"github.com/Lerex702/elorank/internal/changefeed"
	"github.com/Lerex702/elorank/internal/leaderboard"
	"github.com/Lerex702/elorank/internal/metrics"
	"github.com/Lerex702/elorank/internal/player"
	"github.com/charmbracelet/log"
)

// New creates a Board in the loading state.
func New(fetcher Fetcher, metrics metrics.Metrics, opts Options) *Board {
	timeout := opts.RefreshTimeout
	if timeout <= 0 {
		timeout = DefaultRefreshTimeout
	}
	return &Board{
		fetcher:  fetcher,
		metrics:  metrics,
		limit:    opts.Limit,
		timeout:  timeout,
		loading:  true,
		players:  []player.RankedPlayer{},
		watchers: make(map[int]chan struct{}),
	}
}

// Run fetches once, then starts a re-fetch for every event. Re-fetches run
// concurrently and are never coalesced; a result older than the one already
// shown is dropped. Run returns once ctx is done or events is closed and
// every in-flight fetch has finished.
func (b *Board) Run(ctx context.Context, events <-chan changefeed.Event) error {
	log.Info("Leaderboard refresh listener started")
	defer b.wg.Wait()

	b.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info("Leaderboard refresh listener stopping")
			return nil
		case e, ok := <-events:
			if !ok {
				log.Info("Change feed closed, refresh listener stopping")
				return nil
			}
			log.Debug("Change event received", "event", e.ID, "op", e.Op, "uuid", e.UUID)
			b.refresh(ctx)
		}
	}
}

func (b *Board) refresh(ctx context.Context) {
	seq := b.seq.Add(1)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()

		lb, err := b.fetcher.GetLeaderboard(fctx, b.limit)
		if ctx.Err() != nil {
			return
		}
		b.apply(seq, lb, err)
	}()
}

func (b *Board) apply(seq uint64, lb leaderboard.Leaderboard, err error) {
	b.mu.Lock()
	if seq <= b.appliedSeq {
		b.mu.Unlock()
		log.Debug("Discarding stale leaderboard refresh", "seq", seq, "applied", b.appliedSeq)
		b.metrics.IncStaleRefreshesDiscarded()
		return
	}
	b.appliedSeq = seq
	b.loading = false
	if err != nil {
		b.notice = FailureNotice
		log.Error("Leaderboard refresh failed", "seq", seq, "error", err)
	} else {
		b.players = lb.Players
		if b.players == nil {
			b.players = []player.RankedPlayer{}
		}
		b.summary = Summarize(b.players)
		b.updatedAt = lb.UpdatedAt
		b.notice = ""
		b.metrics.IncBoardRefreshes()
		log.Debug("Leaderboard refreshed", "seq", seq, "players", len(b.players))
	}
	b.version++
	b.mu.Unlock()

	b.notify()
}

// View returns the current state.
func (b *Board) View() View {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return View{
		Loading:   b.loading,
		Players:   b.players,
		Summary:   b.summary,
		UpdatedAt: b.updatedAt,
		Version:   b.version,
		Notice:    b.notice,
	}
}

// Subscribe returns a channel that receives a signal after every visible
// change. Signals coalesce while the receiver is busy. Call cancel to stop.
func (b *Board) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.watchMu.Lock()
	id := b.nextWatcher
	b.nextWatcher++
	b.watchers[id] = ch
	b.watchMu.Unlock()

	cancel := func() {
		b.watchMu.Lock()
		delete(b.watchers, id)
		b.watchMu.Unlock()
	}
	return ch, cancel
}

func (b *Board) notify() {
	b.watchMu.Lock()
	defer b.watchMu.Unlock()
	for _, ch := range b.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
