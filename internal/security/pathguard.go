// Package security provides best-effort protected-path filtering for scans.
// Matching is string based, case- and separator-insensitive; it keeps the
// scanner out of system directories but is not a security boundary.
package security

import (
	"path/filepath"
	"strings"
)

// PathGuard rejects paths under a configured set of protected prefixes.
// The prefix list is injected so exclusion policy stays configurable and
// independently testable.
type PathGuard struct {
	prefixes []string
}

// DefaultProtectedPrefixes returns the built-in protected system
// directories for Unix, macOS and Windows.
func DefaultProtectedPrefixes() []string {
	return []string{
		// Unix system directories
		"/bin",
		"/boot",
		"/dev",
		"/etc",
		"/lib",
		"/lib64",
		"/proc",
		"/sbin",
		"/sys",
		"/usr/bin",
		"/usr/lib",
		"/usr/sbin",
		// macOS system directories
		"/System",
		"/Library/System",
		// Windows system directories
		"C:/Windows",
	}
}

// NewPathGuard creates a guard from the given prefix list. Prefixes are
// normalized the same way candidate paths are, so callers may pass them in
// any case or separator style. Empty prefixes are dropped.
func NewPathGuard(prefixes []string) *PathGuard {
	g := &PathGuard{prefixes: make([]string, 0, len(prefixes))}
	for _, p := range prefixes {
		n := normalize(p)
		if n == "" || n == "." {
			continue
		}
		g.prefixes = append(g.prefixes, n)
	}
	return g
}

// Blocked reports whether path falls under any protected prefix. A prefix
// matches only at path-component boundaries: "/etc" blocks "/etc/passwd"
// but not "/etcetera".
func (g *PathGuard) Blocked(path string) bool {
	p := normalize(path)
	for _, prefix := range g.prefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

func normalize(path string) string {
	return strings.ToLower(filepath.ToSlash(filepath.Clean(path)))
}
