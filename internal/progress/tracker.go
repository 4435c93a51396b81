// Package progress tracks the state of many concurrently scanned roots and
// fans updates out to listeners. Aggregate figures are always recomputed
// from the per-root states, never kept as separate running totals.
package progress

import "sync"

// Status is the scan state of a single root.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// terminal reports whether no further transitions are allowed.
func (s Status) terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// State is one root's progress snapshot. TotalFiles and TotalSize are often
// unknown until the root's traversal completes.
type State struct {
	Status       Status
	ScannedFiles int64
	TotalFiles   int64
	ScannedSize  int64
	TotalSize    int64
	Err          string
}

// Event is delivered to listeners on every transition. Root is empty for
// aggregate notifications (Init, CompleteAll).
type Event struct {
	Root  string
	State State
}

// Listener receives progress events. Dispatch is synchronous and best
// effort: a panicking listener is recovered and does not block the rest.
type Listener func(Event)

// Tracker aggregates per-root scan state. All methods are safe for
// concurrent use from scan workers and UI readers.
type Tracker struct {
	mu        sync.RWMutex
	roots     map[string]*State
	order     []string
	listeners []Listener
	stopped   bool
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{roots: make(map[string]*State)}
}

// Subscribe registers a listener for subsequent events.
func (t *Tracker) Subscribe(l Listener) {
	t.mu.Lock()
	t.listeners = append(t.listeners, l)
	t.mu.Unlock()
}

// Init resets all state, marks every root pending and emits one aggregate
// notification.
func (t *Tracker) Init(roots []string) {
	t.mu.Lock()
	t.roots = make(map[string]*State, len(roots))
	t.order = make([]string, 0, len(roots))
	t.stopped = false
	for _, root := range roots {
		if _, dup := t.roots[root]; dup {
			continue
		}
		t.roots[root] = &State{Status: StatusPending}
		t.order = append(t.order, root)
	}
	listeners := t.snapshotListeners()
	t.mu.Unlock()

	dispatch(listeners, Event{})
}

// Update records scanned counters for one root, promoting it from pending
// to in-progress on first contact. Updates to unknown or terminal roots are
// ignored.
func (t *Tracker) Update(root string, scannedFiles, scannedSize int64) {
	t.transition(root, func(s *State) {
		s.ScannedFiles = scannedFiles
		s.ScannedSize = scannedSize
	})
}

// SetTotals records the discovered totals for one root once known.
func (t *Tracker) SetTotals(root string, totalFiles, totalSize int64) {
	t.transition(root, func(s *State) {
		s.TotalFiles = totalFiles
		s.TotalSize = totalSize
	})
}

// Complete marks one root completed.
func (t *Tracker) Complete(root string) {
	t.transition(root, func(s *State) {
		s.Status = StatusCompleted
	})
}

// Fail marks one root failed with the given error.
func (t *Tracker) Fail(root string, err error) {
	t.transition(root, func(s *State) {
		s.Status = StatusFailed
		if err != nil {
			s.Err = err.Error()
		}
	})
}

// transition applies fn to a root's state under the lock and emits a
// per-root event. Pending roots become in-progress first; fn may then move
// the root to a terminal status.
func (t *Tracker) transition(root string, fn func(*State)) {
	t.mu.Lock()
	s, ok := t.roots[root]
	if !ok || t.stopped || s.Status.terminal() {
		t.mu.Unlock()
		return
	}
	if s.Status == StatusPending {
		s.Status = StatusInProgress
	}
	fn(s)
	ev := Event{Root: root, State: *s}
	listeners := t.snapshotListeners()
	t.mu.Unlock()

	dispatch(listeners, ev)
}

// CompleteAll forces every non-terminal root to completed and stops the
// tracker; later transitions are ignored. Emits one aggregate event.
func (t *Tracker) CompleteAll() {
	t.mu.Lock()
	for _, s := range t.roots {
		if !s.Status.terminal() {
			s.Status = StatusCompleted
		}
	}
	t.stopped = true
	listeners := t.snapshotListeners()
	t.mu.Unlock()

	dispatch(listeners, Event{})
}

// IsComplete reports whether every tracked root reached a terminal status.
func (t *Tracker) IsComplete() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.roots) == 0 {
		return false
	}
	for _, s := range t.roots {
		if !s.Status.terminal() {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of one root's state.
func (t *Tracker) Snapshot(root string) (State, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.roots[root]
	if !ok {
		return State{}, false
	}
	return *s, true
}

// Roots returns the tracked roots in registration order.
func (t *Tracker) Roots() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Totals returns the summed counters across all roots, computed on demand.
func (t *Tracker) Totals() (scannedFiles, totalFiles, scannedSize, totalSize int64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, s := range t.roots {
		scannedFiles += s.ScannedFiles
		totalFiles += s.TotalFiles
		scannedSize += s.ScannedSize
		totalSize += s.TotalSize
	}
	return
}

// Fraction returns the overall completion fraction in [0, 1]. Terminal
// roots count as done; in-progress roots contribute their scanned/total
// file ratio when totals are known.
func (t *Tracker) Fraction() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.roots) == 0 {
		return 0
	}
	var sum float64
	for _, s := range t.roots {
		switch {
		case s.Status.terminal():
			sum += 1
		case s.TotalFiles > 0:
			frac := float64(s.ScannedFiles) / float64(s.TotalFiles)
			if frac > 1 {
				frac = 1
			}
			sum += frac
		}
	}
	return sum / float64(len(t.roots))
}

// ErrorCount returns the number of failed roots.
func (t *Tracker) ErrorCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, s := range t.roots {
		if s.Status == StatusFailed {
			n++
		}
	}
	return n
}

// snapshotListeners must be called with the lock held.
func (t *Tracker) snapshotListeners() []Listener {
	listeners := make([]Listener, len(t.listeners))
	copy(listeners, t.listeners)
	return listeners
}

func dispatch(listeners []Listener, ev Event) {
	for _, l := range listeners {
		notify(l, ev)
	}
}

// notify isolates listener panics so one bad listener cannot block
// delivery to the others or corrupt tracker state.
func notify(l Listener, ev Event) {
	defer func() {
		_ = recover()
	}()
	l(ev)
}
