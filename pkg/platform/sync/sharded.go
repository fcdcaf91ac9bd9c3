// Package sync holds concurrency helpers shared by the services.
package sync

import (
	"hash/fnv"
	"sync"
)

// DefaultShards is the shard count used by NewShardedMutex when n <= 0.
const DefaultShards = 32

// ShardedMutex serializes work per key without one global lock. Keys that
// hash to the same shard share a mutex, so callers must never hold two keys
// at once.
type ShardedMutex struct {
	shards []sync.Mutex
}

// NewShardedMutex creates a mutex set with n shards.
func NewShardedMutex(n int) *ShardedMutex {
	if n <= 0 {
		n = DefaultShards
	}
	return &ShardedMutex{shards: make([]sync.Mutex, n)}
}

// Lock acquires the shard for key.
func (m *ShardedMutex) Lock(key string) {
	m.shards[m.shardFor(key)].Lock()
}

// Unlock releases the shard for key.
func (m *ShardedMutex) Unlock(key string) {
	m.shards[m.shardFor(key)].Unlock()
}

// Acquire locks key and returns the matching unlock.
func (m *ShardedMutex) Acquire(key string) (unlock func()) {
	shard := &m.shards[m.shardFor(key)]
	shard.Lock()
	return shard.Unlock
}

// Shards reports the shard count.
func (m *ShardedMutex) Shards() int {
	return len(m.shards)
}

func (m *ShardedMutex) shardFor(key string) int {
	if key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(m.shards)))
}
