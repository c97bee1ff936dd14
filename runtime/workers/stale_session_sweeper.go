package workers

import (
	"context"
	"log/slog"
	"time"

	"filedrop/contract"
	"filedrop/domain"
	"filedrop/errors"

	"github.com/samber/lo"
)

// StaleSessionSweeper drops upload sessions that stopped receiving chunks.
// Claimed sessions are never touched.
type StaleSessionSweeper struct {
	log      *slog.Logger
	tracker  contract.SessionTracker
	chunks   contract.ChunkStore
	observer contract.UploadObserver
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

func NewStaleSessionSweeper(
	log *slog.Logger,
	tracker contract.SessionTracker,
	chunks contract.ChunkStore,
	observer contract.UploadObserver,
	ttl, interval time.Duration,
) *StaleSessionSweeper {
	return &StaleSessionSweeper{
		log:      log,
		tracker:  tracker,
		chunks:   chunks,
		observer: observer,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
	}
}

func (w *StaleSessionSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping session sweeper")
			return nil
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil {
				return err
			}
		}
	}
}

// Sweep runs one pass and returns the number of discarded sessions.
func (w *StaleSessionSweeper) Sweep(ctx context.Context) (int, error) {
	sessions, err := w.tracker.Sessions(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := w.now().Add(-w.ttl)
	stale := lo.Filter(sessions, func(s domain.SessionState, _ int) bool {
		return !s.Assembling && s.UpdatedAt.Before(cutoff)
	})

	swept := 0
	for _, session := range stale {
		forgotten, err := w.tracker.Forget(ctx, session.SessionID, cutoff)
		if err != nil {
			if errors.IsAlreadyComplete(err) {
				continue
			}
			w.log.Warn("Failed to forget stale session", "session_id", session.SessionID, "error", err)
			continue
		}
		if !forgotten {
			continue
		}
		if err := w.chunks.DiscardSession(ctx, session.SessionID); err != nil {
			w.log.Warn("Failed to discard chunks of stale session", "session_id", session.SessionID, "error", err)
		}
		swept++
		w.log.Info("Stale session discarded",
			"session_id", session.SessionID,
			"received", len(session.Received),
			"total_chunks", session.TotalChunks,
			"idle", w.now().Sub(session.UpdatedAt).Truncate(time.Second))
	}

	if swept > 0 {
		w.observer.SessionsSwept(swept)
	}
	return swept, nil
}
