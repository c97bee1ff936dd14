package services

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"filedrop/domain"
	"filedrop/errors"
	"filedrop/runtime"
)

type trackerShard struct {
	sessions  map[domain.SessionID]*domain.SessionState
	completed map[domain.SessionID]time.Time // tombstone expiry
}

// MemorySessionTracker keeps upload bookkeeping in process memory.
// Shard i of the maps is only touched while holding lock i of the lock table,
// so arrivals for sessions on different shards never wait on each other.
type MemorySessionTracker struct {
	locks     *runtime.LockTable
	shards    []trackerShard
	retention time.Duration
	log       *slog.Logger
	now       func() time.Time
}

func NewMemorySessionTracker(locks *runtime.LockTable, log *slog.Logger, retention time.Duration) *MemorySessionTracker {
	shards := make([]trackerShard, locks.Len())
	for i := range shards {
		shards[i] = trackerShard{
			sessions:  make(map[domain.SessionID]*domain.SessionState),
			completed: make(map[domain.SessionID]time.Time),
		}
	}
	return &MemorySessionTracker{
		locks:     locks,
		shards:    shards,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

func (t *MemorySessionTracker) withShard(id domain.SessionID, fn func(shard *trackerShard) error) error {
	return t.locks.WithLock(id, func() error {
		return fn(&t.shards[t.locks.Index(id)])
	})
}

// RegisterChunk creates the session if absent; the first call fixes its total.
// The call that makes the received set complete flips the session to assembling
// inside the same critical section, which is what makes it the only winner.
func (t *MemorySessionTracker) RegisterChunk(ctx context.Context, id domain.SessionID, index domain.ChunkIndex, total int) (domain.RegisterResult, error) {
	if total <= 0 || index < 0 || int(index) >= total {
		return domain.StillPending, fmt.Errorf("%w: chunk index %d out of range for %d chunks", errors.ErrInvalidRequest, index, total)
	}
	if err := ctx.Err(); err != nil {
		return domain.StillPending, err
	}

	result := domain.StillPending
	err := t.withShard(id, func(shard *trackerShard) error {
		now := t.now()
		if expiry, ok := shard.completed[id]; ok {
			if now.Before(expiry) {
				return fmt.Errorf("%w: session %s", errors.ErrUploadAlreadyComplete, id)
			}
			delete(shard.completed, id)
		}

		state, ok := shard.sessions[id]
		if !ok {
			state = domain.NewSessionState(id, total, now)
			shard.sessions[id] = state
		}
		if state.Assembling {
			return fmt.Errorf("%w: session %s", errors.ErrAssemblyInProgress, id)
		}
		if state.TotalChunks != total {
			return fmt.Errorf("%w: session %s expects %d chunks, got %d", errors.ErrTotalMismatch, id, state.TotalChunks, total)
		}

		state.Received[index] = struct{}{}
		state.UpdatedAt = now
		if state.IsComplete() {
			state.Assembling = true
			result = domain.Complete
		}
		return nil
	})
	if err != nil {
		return domain.StillPending, err
	}

	if result == domain.Complete {
		t.log.Debug("Session claimed for assembly", "session_id", id, "total_chunks", total)
	}
	return result, nil
}

func (t *MemorySessionTracker) Finish(_ context.Context, id domain.SessionID) error {
	return t.withShard(id, func(shard *trackerShard) error {
		state, ok := shard.sessions[id]
		if !ok || !state.Assembling {
			return fmt.Errorf("session %s is not claimed", id)
		}
		delete(shard.sessions, id)
		if t.retention > 0 {
			shard.completed[id] = t.now().Add(t.retention)
		}
		return nil
	})
}

func (t *MemorySessionTracker) Release(_ context.Context, id domain.SessionID) error {
	return t.withShard(id, func(shard *trackerShard) error {
		state, ok := shard.sessions[id]
		if !ok || !state.Assembling {
			return fmt.Errorf("session %s is not claimed", id)
		}
		state.Assembling = false
		return nil
	})
}

// Sessions returns copies of every tracked session and drops expired tombstones.
func (t *MemorySessionTracker) Sessions(_ context.Context) ([]domain.SessionState, error) {
	var states []domain.SessionState
	for i := range t.shards {
		shard := &t.shards[i]
		t.locks.WithShard(i, func() {
			now := t.now()
			for id, expiry := range shard.completed {
				if !now.Before(expiry) {
					delete(shard.completed, id)
				}
			}
			for _, state := range shard.sessions {
				snapshot := *state
				snapshot.Received = maps.Clone(state.Received)
				states = append(states, snapshot)
			}
		})
	}
	return states, nil
}

func (t *MemorySessionTracker) Forget(_ context.Context, id domain.SessionID, staleBefore time.Time) (bool, error) {
	forgotten := false
	err := t.withShard(id, func(shard *trackerShard) error {
		state, ok := shard.sessions[id]
		if !ok {
			return nil
		}
		if state.Assembling {
			return fmt.Errorf("%w: session %s", errors.ErrAssemblyInProgress, id)
		}
		if state.UpdatedAt.Before(staleBefore) {
			delete(shard.sessions, id)
			forgotten = true
		}
		return nil
	})
	return forgotten, err
}
