package progress

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestInitMarksRootsPending(t *testing.T) {
	tr := NewTracker()
	tr.Init([]string{"/a", "/b"})

	for _, root := range []string{"/a", "/b"} {
		s, ok := tr.Snapshot(root)
		if !ok {
			t.Fatalf("root %s not tracked", root)
		}
		if s.Status != StatusPending {
			t.Errorf("root %s status = %q, want %q", root, s.Status, StatusPending)
		}
	}
	if tr.IsComplete() {
		t.Error("tracker must not be complete right after Init")
	}
}

func TestInitEmitsAggregateEvent(t *testing.T) {
	tr := NewTracker()

	var events []Event
	tr.Subscribe(func(ev Event) { events = append(events, ev) })

	tr.Init([]string{"/a"})

	if len(events) != 1 {
		t.Fatalf("got %d events after Init, want 1", len(events))
	}
	if events[0].Root != "" {
		t.Errorf("Init event root = %q, want aggregate (empty)", events[0].Root)
	}
}

func TestStateMachineTransitions(t *testing.T) {
	tr := NewTracker()
	tr.Init([]string{"/a"})

	tr.Update("/a", 10, 1024)
	if s, _ := tr.Snapshot("/a"); s.Status != StatusInProgress {
		t.Errorf("status after Update = %q, want %q", s.Status, StatusInProgress)
	}

	tr.Complete("/a")
	if s, _ := tr.Snapshot("/a"); s.Status != StatusCompleted {
		t.Errorf("status after Complete = %q, want %q", s.Status, StatusCompleted)
	}

	// Terminal states are sticky.
	tr.Update("/a", 99, 9999)
	if s, _ := tr.Snapshot("/a"); s.ScannedFiles != 10 {
		t.Errorf("update after completion changed counters: %d", s.ScannedFiles)
	}
	tr.Fail("/a", errors.New("late failure"))
	if s, _ := tr.Snapshot("/a"); s.Status != StatusCompleted {
		t.Errorf("Fail overwrote terminal status: %q", s.Status)
	}
}

func TestFailRecordsError(t *testing.T) {
	tr := NewTracker()
	tr.Init([]string{"/a", "/b"})

	tr.Fail("/a", errors.New("disk on fire"))

	s, _ := tr.Snapshot("/a")
	if s.Status != StatusFailed {
		t.Errorf("status = %q, want %q", s.Status, StatusFailed)
	}
	if s.Err != "disk on fire" {
		t.Errorf("err = %q, want %q", s.Err, "disk on fire")
	}
	if tr.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d, want 1", tr.ErrorCount())
	}

	// Other root is unaffected.
	if sb, _ := tr.Snapshot("/b"); sb.Status != StatusPending {
		t.Errorf("sibling root status = %q, want %q", sb.Status, StatusPending)
	}
}

func TestIsCompleteSemantics(t *testing.T) {
	tr := NewTracker()
	tr.Init([]string{"/a", "/b", "/c"})

	tr.Complete("/a")
	tr.Fail("/b", errors.New("boom"))
	if tr.IsComplete() {
		t.Error("IsComplete true while /c is pending")
	}

	tr.Update("/c", 1, 1)
	if tr.IsComplete() {
		t.Error("IsComplete true while /c is in progress")
	}

	tr.Complete("/c")
	if !tr.IsComplete() {
		t.Error("IsComplete false although every root is terminal")
	}
}

func TestCompleteAllForcesTerminal(t *testing.T) {
	tr := NewTracker()
	tr.Init([]string{"/a", "/b"})
	tr.Update("/a", 5, 100)

	tr.CompleteAll()

	if !tr.IsComplete() {
		t.Fatal("IsComplete false after CompleteAll")
	}
	if s, _ := tr.Snapshot("/a"); s.Status != StatusCompleted {
		t.Errorf("/a status = %q, want %q", s.Status, StatusCompleted)
	}
	if s, _ := tr.Snapshot("/b"); s.Status != StatusCompleted {
		t.Errorf("/b status = %q, want %q", s.Status, StatusCompleted)
	}

	// Stopped tracker drops further transitions.
	tr.Update("/a", 50, 5000)
	if s, _ := tr.Snapshot("/a"); s.ScannedFiles != 5 {
		t.Errorf("update after CompleteAll changed counters: %d", s.ScannedFiles)
	}
}

func TestTotalsAggregateAcrossRoots(t *testing.T) {
	tr := NewTracker()
	tr.Init([]string{"/a", "/b"})

	tr.Update("/a", 3, 300)
	tr.SetTotals("/a", 3, 300)
	tr.Update("/b", 7, 700)
	tr.SetTotals("/b", 7, 700)

	scannedFiles, totalFiles, scannedSize, totalSize := tr.Totals()
	if scannedFiles != 10 || totalFiles != 10 {
		t.Errorf("file totals = %d/%d, want 10/10", scannedFiles, totalFiles)
	}
	if scannedSize != 1000 || totalSize != 1000 {
		t.Errorf("size totals = %d/%d, want 1000/1000", scannedSize, totalSize)
	}
}

func TestFraction(t *testing.T) {
	tr := NewTracker()
	tr.Init([]string{"/a", "/b"})

	if got := tr.Fraction(); got != 0 {
		t.Errorf("initial Fraction = %v, want 0", got)
	}

	tr.Complete("/a")
	if got := tr.Fraction(); got != 0.5 {
		t.Errorf("Fraction with one of two roots done = %v, want 0.5", got)
	}

	tr.SetTotals("/b", 10, 1000)
	tr.Update("/b", 5, 500)
	if got := tr.Fraction(); got != 0.75 {
		t.Errorf("Fraction = %v, want 0.75", got)
	}

	tr.Complete("/b")
	if got := tr.Fraction(); got != 1 {
		t.Errorf("final Fraction = %v, want 1", got)
	}
}

func TestListenerPanicDoesNotBlockOthers(t *testing.T) {
	tr := NewTracker()
	tr.Init([]string{"/a"})

	var delivered int
	tr.Subscribe(func(Event) { panic("bad listener") })
	tr.Subscribe(func(Event) { delivered++ })

	tr.Update("/a", 1, 1)
	tr.Complete("/a")

	if delivered != 2 {
		t.Errorf("second listener received %d events, want 2", delivered)
	}
	if s, _ := tr.Snapshot("/a"); s.Status != StatusCompleted {
		t.Errorf("tracker state corrupted by panicking listener: %q", s.Status)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	roots := []string{"/a", "/b", "/c", "/d"}
	tr := NewTracker()
	tr.Init(roots)

	var wg sync.WaitGroup
	for _, root := range roots {
		wg.Add(1)
		go func(root string) {
			defer wg.Done()
			for i := int64(1); i <= 100; i++ {
				tr.Update(root, i, i*10)
			}
			tr.Complete(root)
		}(root)
	}
	wg.Wait()

	if !tr.IsComplete() {
		t.Fatal("tracker incomplete after all roots finished")
	}
	scannedFiles, _, scannedSize, _ := tr.Totals()
	if scannedFiles != 400 {
		t.Errorf("scanned files = %d, want 400", scannedFiles)
	}
	if scannedSize != 4000 {
		t.Errorf("scanned size = %d, want 4000", scannedSize)
	}
}

func TestFormatState(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected string
	}{
		{"pending", State{Status: StatusPending}, "/data: waiting"},
		{"in_progress", State{Status: StatusInProgress, ScannedFiles: 3, ScannedSize: 2048}, "/data: 3 files (2.0 KiB)"},
		{"completed", State{Status: StatusCompleted, ScannedFiles: 3, ScannedSize: 2048}, "/data: done, 3 files (2.0 KiB)"},
		{"failed", State{Status: StatusFailed, Err: "permission denied"}, "/data: failed: permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatState("/data", tt.state); got != tt.expected {
				t.Errorf("FormatState = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "3h4m5s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.expected {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.expected)
		}
	}
}
