package cluster

import "sync"

// FileCluster is a group of files sharing one ClusterKey. Entries are
// appended concurrently from scan workers; a per-cluster mutex keeps
// FileCount and TotalSize consistent with the entry list at all times.
// Clusters are never removed or merged during a scan.
type FileCluster struct {
	id  string
	key ClusterKey

	mu        sync.Mutex
	entries   []FileEntry
	fileCount int
	totalSize int64
}

func newCluster(key ClusterKey, seq int64) *FileCluster {
	return &FileCluster{
		id:  clusterID(key, seq),
		key: key,
	}
}

// ID returns the cluster's readable id, unique within one scan.
func (c *FileCluster) ID() string { return c.id }

// Key returns the grouping triple this cluster was created for.
func (c *FileCluster) Key() ClusterKey { return c.key }

// add appends an entry and updates the aggregates under the cluster lock.
func (c *FileCluster) add(e FileEntry) {
	c.mu.Lock()
	c.entries = append(c.entries, e)
	c.fileCount++
	c.totalSize += e.Size
	c.mu.Unlock()
}

// FileCount returns the number of entries in the cluster.
func (c *FileCluster) FileCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fileCount
}

// TotalSize returns the summed size of all entries in bytes.
func (c *FileCluster) TotalSize() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalSize
}

// Entries returns a copy of the entry list. Mid-scan callers may observe a
// partially filled cluster; the copy itself is always internally consistent.
func (c *FileCluster) Entries() []FileEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]FileEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
