package scanner

import (
	"fmt"
	"sync"
)

// errorLog is an append-only error collection shared by scan workers.
// Appends from parallel workers are mutex-guarded; an unsynchronized slice
// here would be a data race.
type errorLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *errorLog) appendf(format string, args ...any) {
	l.mu.Lock()
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *errorLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}
