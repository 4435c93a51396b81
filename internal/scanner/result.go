package scanner

import (
	"time"

	"github.com/hanpf2391/clear-ai-sub001/internal/cluster"
)

// Result is the immutable snapshot assembled once a root's traversal
// completes. ID is a per-invocation session id used by downstream analysis
// to correlate clusters with recommendations.
type Result struct {
	ID         string
	Root       string
	Clusters   []*cluster.FileCluster
	TotalFiles int64
	TotalSize  int64
	Errors     []string
	Duration   time.Duration
}

// Merge folds another root's result into r for multi-root aggregation:
// clusters are concatenated, counters and error lists are summed. Cluster
// ids are only guaranteed unique within a single root's scan, not across a
// merge. The per-root results stay untouched.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Clusters = append(r.Clusters, other.Clusters...)
	r.TotalFiles += other.TotalFiles
	r.TotalSize += other.TotalSize
	r.Errors = append(r.Errors, other.Errors...)
	if other.Duration > r.Duration {
		// Roots scan concurrently, so the aggregate takes the longest one.
		r.Duration = other.Duration
	}
}
