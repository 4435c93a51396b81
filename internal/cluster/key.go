package cluster

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// TimeBucket is a coarse recency category derived from a file's
// modification time.
type TimeBucket string

// Bucket thresholds are measured as elapsed time between the file's
// modification time and the scan's reference time:
//
//	today:   less than 24 hours
//	week:    less than 7 days
//	month:   less than 30 days
//	older:   30 days or more
//	unknown: zero modification time (unreadable or unparsable)
//
// Files with a modification time in the future are treated as today.
const (
	BucketToday   TimeBucket = "today"
	BucketWeek    TimeBucket = "week"
	BucketMonth   TimeBucket = "month"
	BucketOlder   TimeBucket = "older"
	BucketUnknown TimeBucket = "unknown"
)

// NoExtension is the extension token for files without an extension.
const NoExtension = "noext"

// keySep joins the key components. NUL cannot appear in a file path on any
// supported platform, so the encoding is injective.
const keySep = "\x00"

// ClusterKey is the derived grouping triple for a file.
type ClusterKey struct {
	PathSignature string
	Extension     string
	Bucket        TimeBucket
}

// String encodes the triple as a single map key.
func (k ClusterKey) String() string {
	return k.PathSignature + keySep + k.Extension + keySep + string(k.Bucket)
}

// Derive computes the cluster key for a file. It is pure: no I/O, and the
// same inputs always produce the same key.
func Derive(name, parentPath string, modTime, now time.Time) ClusterKey {
	return ClusterKey{
		PathSignature: PathSignature(parentPath),
		Extension:     ExtensionToken(name),
		Bucket:        BucketFor(modTime, now),
	}
}

// PathSignature normalizes a parent directory path: separators unified to
// slashes, redundant elements cleaned, case folded. Two files share a
// signature iff they live in the same directory.
func PathSignature(parentPath string) string {
	return strings.ToLower(filepath.ToSlash(filepath.Clean(parentPath)))
}

// ExtensionToken returns the lowercased text after the final dot of a file
// name. Names without a dot, names ending in a dot, and dotfiles whose only
// dot is the leading one (".bashrc") all map to NoExtension.
func ExtensionToken(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return NoExtension
	}
	return strings.ToLower(name[idx+1:])
}

// BucketFor classifies a modification time relative to now.
func BucketFor(modTime, now time.Time) TimeBucket {
	if modTime.IsZero() {
		return BucketUnknown
	}
	elapsed := now.Sub(modTime)
	switch {
	case elapsed < 24*time.Hour:
		return BucketToday
	case elapsed < 7*24*time.Hour:
		return BucketWeek
	case elapsed < 30*24*time.Hour:
		return BucketMonth
	default:
		return BucketOlder
	}
}

// clusterID builds a short readable id from the key triple and the sequence
// number the registry assigned to it.
func clusterID(key ClusterKey, seq int64) string {
	base := path.Base(key.PathSignature)
	if base == "/" || base == "." {
		base = "root"
	}
	ext := key.Extension
	if ext == "" {
		ext = NoExtension
	}
	return fmt.Sprintf("%s-%s-%s-%03d", base, ext, key.Bucket, seq)
}
