package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"filedrop/domain"
	"filedrop/errors"
	"filedrop/runtime"

	"github.com/dgraph-io/badger/v4"
)

// Key layout:
//
//	session:<id>:meta          pending bookkeeping (total, received count)
//	session:<id>:chunk:<index> one empty entry per received index
//	claim:<id>                 session claimed by the arrival that completed it
//	done:<id>                  tombstone of an assembled session, expires after retention
const (
	sessionPrefix = "session:"
	claimPrefix   = "claim:"
	donePrefix    = "done:"
)

type sessionMeta struct {
	TotalChunks int       `json:"total_chunks"`
	Received    int       `json:"received"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BadgerSessionTracker persists upload session bookkeeping in BadgerDB so that
// a restart neither loses received chunks nor completes a session twice.
type BadgerSessionTracker struct {
	db        *badger.DB
	locks     *runtime.LockTable
	log       *slog.Logger
	retention time.Duration
	now       func() time.Time
}

func NewBadgerSessionTracker(db *badger.DB, locks *runtime.LockTable, log *slog.Logger, retention time.Duration) *BadgerSessionTracker {
	return &BadgerSessionTracker{
		db:        db,
		locks:     locks,
		log:       log,
		retention: retention,
		now:       time.Now,
	}
}

func metaKey(id domain.SessionID) []byte {
	return []byte(sessionPrefix + string(id) + ":meta")
}

func chunkPrefix(id domain.SessionID) []byte {
	return []byte(sessionPrefix + string(id) + ":chunk:")
}

func chunkKey(id domain.SessionID, index domain.ChunkIndex) []byte {
	return append(chunkPrefix(id), strconv.Itoa(int(index))...)
}

func claimKey(id domain.SessionID) []byte {
	return []byte(claimPrefix + string(id))
}

func doneKey(id domain.SessionID) []byte {
	return []byte(donePrefix + string(id))
}

// RegisterChunk records index for the session in one read-write transaction.
// The transaction that brings the received count to total moves the session to
// claim:<id> and reports Complete; it runs under the session's shard lock so no
// other arrival for the same session can observe the intermediate state.
func (t *BadgerSessionTracker) RegisterChunk(ctx context.Context, id domain.SessionID, index domain.ChunkIndex, total int) (domain.RegisterResult, error) {
	if err := validateRegistration(id, index, total); err != nil {
		return domain.StillPending, err
	}
	if err := ctx.Err(); err != nil {
		return domain.StillPending, err
	}

	completed := false
	err := t.locks.WithLock(id, func() error {
		return t.db.Update(func(txn *badger.Txn) error {
			if err := checkNotClaimed(txn, id); err != nil {
				return err
			}

			meta, found, err := readMeta(txn, metaKey(id))
			if err != nil {
				return err
			}
			if !found {
				meta = sessionMeta{TotalChunks: total}
			}
			if meta.TotalChunks != total {
				return fmt.Errorf("%w: session %s expects %d chunks, got %d", errors.ErrTotalMismatch, id, meta.TotalChunks, total)
			}

			seen, err := exists(txn, chunkKey(id, index))
			if err != nil {
				return err
			}
			if !seen {
				if err := txn.Set(chunkKey(id, index), []byte{}); err != nil {
					return err
				}
				meta.Received++
			}
			meta.UpdatedAt = t.now().UTC()

			data, err := json.Marshal(meta)
			if err != nil {
				return err
			}
			if meta.Received < meta.TotalChunks {
				return txn.Set(metaKey(id), data)
			}

			if err := txn.Delete(metaKey(id)); err != nil {
				return err
			}
			completed = true
			return txn.Set(claimKey(id), data)
		})
	})
	if err != nil {
		return domain.StillPending, err
	}

	if completed {
		t.log.Debug("Session claimed for assembly", "session_id", id, "total_chunks", total)
		return domain.Complete, nil
	}
	return domain.StillPending, nil
}

// Finish removes the claim and chunk bookkeeping and leaves a completion tombstone.
func (t *BadgerSessionTracker) Finish(_ context.Context, id domain.SessionID) error {
	return t.locks.WithLock(id, func() error {
		return t.db.Update(func(txn *badger.Txn) error {
			meta, found, err := readMeta(txn, claimKey(id))
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("session %s is not claimed", id)
			}
			if err := deletePrefix(txn, chunkPrefix(id)); err != nil {
				return err
			}
			if err := txn.Delete(claimKey(id)); err != nil {
				return err
			}

			meta.UpdatedAt = t.now().UTC()
			data, err := json.Marshal(meta)
			if err != nil {
				return err
			}
			entry := badger.NewEntry(doneKey(id), data)
			if t.retention > 0 {
				entry = entry.WithTTL(t.retention)
			}
			return txn.SetEntry(entry)
		})
	})
}

// Release turns a claimed session back into a pending one with its full received set,
// so that the next arrival for it re-runs the completion check.
func (t *BadgerSessionTracker) Release(_ context.Context, id domain.SessionID) error {
	return t.locks.WithLock(id, func() error {
		return t.db.Update(func(txn *badger.Txn) error {
			return releaseClaim(txn, id)
		})
	})
}

// ReleaseClaims releases every claim left behind by a process that stopped mid-assembly.
func (t *BadgerSessionTracker) ReleaseClaims(ctx context.Context) (int, error) {
	var ids []domain.SessionID
	err := t.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(claimPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, domain.SessionID(strings.TrimPrefix(string(it.Item().Key()), claimPrefix)))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("list claims: %w", err)
	}

	for _, id := range ids {
		if err := t.Release(ctx, id); err != nil {
			return 0, fmt.Errorf("release claim of %s: %w", id, err)
		}
		t.log.Info("Released interrupted assembly", "session_id", id)
	}
	return len(ids), nil
}

// Sessions lists pending and claimed sessions with their received indices.
func (t *BadgerSessionTracker) Sessions(_ context.Context) ([]domain.SessionState, error) {
	states := make(map[domain.SessionID]*domain.SessionState)
	get := func(id domain.SessionID) *domain.SessionState {
		state, ok := states[id]
		if !ok {
			state = &domain.SessionState{SessionID: id, Received: make(map[domain.ChunkIndex]struct{})}
			states[id] = state
		}
		return state
	}

	err := t.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for _, prefix := range [][]byte{[]byte(sessionPrefix), []byte(claimPrefix)} {
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				item := it.Item()
				key := string(item.Key())

				if strings.HasPrefix(key, claimPrefix) {
					meta, err := decodeMeta(item)
					if err != nil {
						return err
					}
					state := get(domain.SessionID(strings.TrimPrefix(key, claimPrefix)))
					state.TotalChunks, state.UpdatedAt, state.Assembling = meta.TotalChunks, meta.UpdatedAt, true
					continue
				}

				parts := strings.Split(strings.TrimPrefix(key, sessionPrefix), ":")
				switch {
				case len(parts) == 2 && parts[1] == "meta":
					meta, err := decodeMeta(item)
					if err != nil {
						return err
					}
					state := get(domain.SessionID(parts[0]))
					state.TotalChunks, state.UpdatedAt = meta.TotalChunks, meta.UpdatedAt
				case len(parts) == 3 && parts[1] == "chunk":
					index, err := strconv.Atoi(parts[2])
					if err != nil {
						t.log.Warn("Ignoring malformed chunk key", "key", key)
						continue
					}
					get(domain.SessionID(parts[0])).Received[domain.ChunkIndex(index)] = struct{}{}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	result := make([]domain.SessionState, 0, len(states))
	for _, state := range states {
		result = append(result, *state)
	}
	return result, nil
}

// Forget drops the pending bookkeeping of a session idle since before staleBefore.
// Claimed sessions are left alone.
func (t *BadgerSessionTracker) Forget(_ context.Context, id domain.SessionID, staleBefore time.Time) (bool, error) {
	forgotten := false
	err := t.locks.WithLock(id, func() error {
		return t.db.Update(func(txn *badger.Txn) error {
			claimed, err := exists(txn, claimKey(id))
			if err != nil {
				return err
			}
			if claimed {
				return fmt.Errorf("%w: session %s", errors.ErrAssemblyInProgress, id)
			}
			meta, ok, err := readMeta(txn, metaKey(id))
			if err != nil || !ok || !meta.UpdatedAt.Before(staleBefore) {
				return err
			}
			if err := deletePrefix(txn, chunkPrefix(id)); err != nil {
				return err
			}
			forgotten = true
			return txn.Delete(metaKey(id))
		})
	})
	return forgotten && err == nil, err
}

func validateRegistration(id domain.SessionID, index domain.ChunkIndex, total int) error {
	if err := checkName(string(id)); err != nil {
		return err
	}
	if total <= 0 || index < 0 || int(index) >= total {
		return fmt.Errorf("%w: chunk index %d out of range for %d chunks", errors.ErrInvalidRequest, index, total)
	}
	return nil
}

func checkNotClaimed(txn *badger.Txn, id domain.SessionID) error {
	done, err := exists(txn, doneKey(id))
	if err != nil {
		return err
	}
	if done {
		return fmt.Errorf("%w: session %s", errors.ErrUploadAlreadyComplete, id)
	}
	claimed, err := exists(txn, claimKey(id))
	if err != nil {
		return err
	}
	if claimed {
		return fmt.Errorf("%w: session %s", errors.ErrAssemblyInProgress, id)
	}
	return nil
}

func releaseClaim(txn *badger.Txn, id domain.SessionID) error {
	meta, found, err := readMeta(txn, claimKey(id))
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("session %s is not claimed", id)
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	if err := txn.Delete(claimKey(id)); err != nil {
		return err
	}
	return txn.Set(metaKey(id), data)
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func readMeta(txn *badger.Txn, key []byte) (sessionMeta, bool, error) {
	item, err := txn.Get(key)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return sessionMeta{}, false, nil
	}
	if err != nil {
		return sessionMeta{}, false, err
	}
	meta, err := decodeMeta(item)
	return meta, err == nil, err
}

func decodeMeta(item *badger.Item) (sessionMeta, error) {
	var meta sessionMeta
	err := item.Value(func(v []byte) error {
		return json.Unmarshal(v, &meta)
	})
	if err != nil {
		return sessionMeta{}, fmt.Errorf("decode %s: %w", item.Key(), err)
	}
	return meta, nil
}

// deletePrefix collects the keys first: deleting while iterating is not allowed.
func deletePrefix(txn *badger.Txn, prefix []byte) error {
	var keys [][]byte
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
