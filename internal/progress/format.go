package progress

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatState returns a human-readable one-liner for a root's state.
func FormatState(root string, s State) string {
	switch s.Status {
	case StatusPending:
		return fmt.Sprintf("%s: waiting", root)
	case StatusInProgress:
		return fmt.Sprintf("%s: %d files (%s)", root, s.ScannedFiles, humanize.IBytes(uint64(s.ScannedSize)))
	case StatusCompleted:
		return fmt.Sprintf("%s: done, %d files (%s)", root, s.ScannedFiles, humanize.IBytes(uint64(s.ScannedSize)))
	case StatusFailed:
		return fmt.Sprintf("%s: failed: %s", root, s.Err)
	default:
		return root
	}
}

// FormatDuration formats a duration as compact h/m/s text.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
