package cluster

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const shardCount = 16

// Registry is a concurrent key -> cluster store scoped to a single scan
// invocation. Reusing a registry across scans would leak ids and totals;
// every scan starts from a fresh one.
//
// The map is sharded so workers hitting different keys never contend on a
// single lock, and GetOrCreate constructs at most one cluster per key no
// matter how many workers race to insert it first.
type Registry struct {
	shards [shardCount]registryShard
	seq    atomic.Int64
}

type registryShard struct {
	mu       sync.RWMutex
	clusters map[string]*FileCluster
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i].clusters = make(map[string]*FileCluster)
	}
	return r
}

func (r *Registry) shard(key string) *registryShard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return &r.shards[h.Sum32()%shardCount]
}

// GetOrCreate returns the cluster for key, constructing it exactly once.
// The sequence number embedded in the cluster id is assigned here, under
// the shard lock, so ids are unique and never reassigned within a scan.
func (r *Registry) GetOrCreate(key ClusterKey) *FileCluster {
	ks := key.String()
	s := r.shard(ks)

	s.mu.RLock()
	c := s.clusters[ks]
	s.mu.RUnlock()
	if c != nil {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.clusters[ks]; c != nil {
		return c
	}
	c = newCluster(key, r.seq.Add(1))
	s.clusters[ks] = c
	return c
}

// AddFile appends entry to cluster. Safe for concurrent calls on the same
// cluster; synchronization is per cluster, not registry-wide.
func (r *Registry) AddFile(c *FileCluster, entry FileEntry) {
	c.add(entry)
}

// Clusters returns a snapshot of all clusters created so far. During a scan
// the snapshot may trail in-flight inserts; that is fine for progress
// reporting, and after the scan completes it is exact.
func (r *Registry) Clusters() []*FileCluster {
	out := make([]*FileCluster, 0, r.Len())
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.RLock()
		for _, c := range s.clusters {
			out = append(out, c)
		}
		s.mu.RUnlock()
	}
	return out
}

// Len returns the number of distinct clusters.
func (r *Registry) Len() int {
	n := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.RLock()
		n += len(s.clusters)
		s.mu.RUnlock()
	}
	return n
}
