package runtime

import (
	"errors"
	"sync"
	"testing"

	"filedrop/domain"

	"github.com/stretchr/testify/require"
)

func TestLockTable_SerializesSameSession(t *testing.T) {
	req := require.New(t)
	table := NewLockTable(8)

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = table.WithLock("session-a", func() error {
				// Unsynchronized on purpose: the shard lock is the only guard.
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	req.Equal(200, counter)
}

func TestLockTable_SameSessionSameShard(t *testing.T) {
	req := require.New(t)
	table := NewLockTable(16)

	id := domain.SessionID("8f2c1b7e-upload")
	req.Same(table.shard(id), table.shard(id))
}

func TestLockTable_DefaultShards(t *testing.T) {
	req := require.New(t)
	req.Equal(DefaultLockShards, NewLockTable(0).Len())
	req.Equal(4, NewLockTable(4).Len())
}

func TestLockTable_PropagatesError(t *testing.T) {
	req := require.New(t)
	table := NewLockTable(2)

	errBoom := errors.New("boom")
	err := table.WithLock("s", func() error { return errBoom })
	req.ErrorIs(err, errBoom)
}
