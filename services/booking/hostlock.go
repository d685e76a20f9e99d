package booking

import (
	"hash/fnv"
	"sync"
)

const hostLockShards = 64

// hostLockTable serializes booking writes per host. Two creates for the same
// host always contend on the same shard, closing the window between the
// overlap check and the insert. Distinct hosts may share a shard; that only
// costs throughput, never correctness.
type hostLockTable struct {
	shards [hostLockShards]sync.Mutex
}

func (t *hostLockTable) lock(hostID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(hostID))
	m := &t.shards[h.Sum32()%hostLockShards]
	m.Lock()
	return m
}
