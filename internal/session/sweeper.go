package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/Procure/internal/hermes"
)

// Sweeper discards sessions that have been idle longer than the TTL.
type Sweeper struct {
	store    Store
	hermes   hermes.Client
	ttl      time.Duration
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewSweeper(s Store, h hermes.Client, ttl, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		store:    s,
		hermes:   h,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

func (sw *Sweeper) Start(ctx context.Context) {
	sw.wg.Add(1)
	go sw.loop(ctx)
}

func (sw *Sweeper) Stop() {
	sw.stopOnce.Do(func() { close(sw.stopCh) })
	sw.wg.Wait()
}

func (sw *Sweeper) loop(ctx context.Context) {
	defer sw.wg.Done()
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-sw.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			sw.Sweep(ctx)
		}
	}
}

// Sweep deletes every expired session and returns how many were removed.
func (sw *Sweeper) Sweep(ctx context.Context) int {
	cutoff := sw.now().Add(-sw.ttl)
	expired, err := sw.store.ListExpired(ctx, cutoff)
	if err != nil {
		sw.logger.Error("failed to list expired sessions", "error", err)
		return 0
	}

	removed := 0
	for _, s := range expired {
		deleted, err := sw.store.DeleteIfIdle(ctx, s.ID, cutoff)
		if err != nil {
			// a concurrent DELETE may have won
			sw.logger.Debug("expired session already gone", "session_id", s.ID, "error", err)
			continue
		}
		if !deleted {
			sw.logger.Debug("session touched since listing", "session_id", s.ID)
			continue
		}
		removed++
		sw.logger.Info("session expired", "session_id", s.ID, "idle_since", s.UpdatedAt)
		hermes.PublishBestEffort(sw.hermes, sw.logger, hermes.SubjectSessionExpired(s.ID.String()), hermes.SessionExpiredEvent{
			SessionID: s.ID.String(),
			IdleSince: s.UpdatedAt,
		})
	}
	return removed
}
