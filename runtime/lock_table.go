package runtime

import (
	"sync"

	"filedrop/domain"

	"github.com/cespare/xxhash/v2"
)

const DefaultLockShards = 64

// LockTable is a fixed set of mutexes indexed by a hash of the session id.
// Two sessions only contend when they land on the same shard.
type LockTable struct {
	shards []sync.Mutex
}

func NewLockTable(shards int) *LockTable {
	if shards <= 0 {
		shards = DefaultLockShards
	}
	return &LockTable{shards: make([]sync.Mutex, shards)}
}

// Index returns the shard owning id. Callers may keep per-shard state indexed by it.
func (l *LockTable) Index(id domain.SessionID) int {
	return int(xxhash.Sum64String(string(id)) % uint64(len(l.shards)))
}

func (l *LockTable) shard(id domain.SessionID) *sync.Mutex {
	return &l.shards[l.Index(id)]
}

// WithLock runs fn while holding the lock of the session's shard.
func (l *LockTable) WithLock(id domain.SessionID, fn func() error) error {
	mu := l.shard(id)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

func (l *LockTable) Len() int {
	return len(l.shards)
}

// WithShard runs fn while holding lock i, for callers walking every shard.
func (l *LockTable) WithShard(i int, fn func()) {
	mu := &l.shards[i]
	mu.Lock()
	defer mu.Unlock()
	fn()
}
