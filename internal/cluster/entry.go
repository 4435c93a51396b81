// Package cluster groups scanned files into homogeneous clusters keyed by
// parent directory, extension and modification recency. A Registry holds the
// clusters for one scan invocation; keys are derived by pure functions so the
// same file always lands in the same cluster.
package cluster

import "time"

// FileEntry describes a single regular file accepted by the scanner.
// It is created once per entry and never mutated afterwards.
type FileEntry struct {
	Path       string
	Name       string
	ParentPath string
	Size       int64
	ModTime    time.Time
}
