package sync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewShardedMutexDefaults(t *testing.T) {
	assert.Equal(t, DefaultShards, NewShardedMutex(0).Shards())
	assert.Equal(t, 4, NewShardedMutex(4).Shards())
}

func TestShardForIsStable(t *testing.T) {
	m := NewShardedMutex(8)
	assert.Equal(t, 0, m.shardFor(""))
	assert.Equal(t, m.shardFor("email:ayesha@example.com"), m.shardFor("email:ayesha@example.com"))
	for _, key := range []string{"a", "doctor:1", "email:x@example.com"} {
		shard := m.shardFor(key)
		assert.GreaterOrEqual(t, shard, 0)
		assert.Less(t, shard, 8)
	}
}

func TestAcquireSerializesSameKey(t *testing.T) {
	m := NewShardedMutex(0)
	counter := 0
	var wg sync.WaitGroup

	for range 100 {
		wg.Go(func() {
			unlock := m.Acquire("doctor:same")
			defer unlock()
			counter++
		})
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestLockUnlockAcrossKeys(t *testing.T) {
	m := NewShardedMutex(2)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			key := "doctor:" + string(rune('A'+i%26))
			m.Lock(key)
			defer m.Unlock(key)
		})
	}
	wg.Wait()
}
