// Package ui renders live scan progress in the terminal. The model reads
// tracker state on every event and tick; it never keeps its own running
// totals.
package ui

import (
	"fmt"
	"strings"

	teaprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/hanpf2391/clear-ai-sub001/internal/progress"
)

type eventMsg progress.Event

// ScanModel is the bubbletea model for a multi-root scan.
type ScanModel struct {
	tracker *progress.Tracker
	roots   []string
	spinner spinner.Model
	bar     teaprogress.Model
	events  chan progress.Event
	done    bool
}

// NewScanModel builds a model subscribed to the tracker. Events flow
// through a buffered channel; the listener drops updates when the UI lags
// so it never blocks scan workers.
func NewScanModel(t *progress.Tracker) *ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := &ScanModel{
		tracker: t,
		roots:   t.Roots(),
		spinner: s,
		bar:     teaprogress.New(teaprogress.WithDefaultGradient()),
		events:  make(chan progress.Event, 64),
	}
	t.Subscribe(func(ev progress.Event) {
		select {
		case m.events <- ev:
		default:
		}
	})
	return m
}

// Init starts the spinner and the event pump.
func (m *ScanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

func (m *ScanModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-m.events)
	}
}

// Update handles messages.
func (m *ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		// The tick doubles as a completion poll in case the final event
		// raced past the pump.
		if m.maybeFinish() {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		if m.maybeFinish() {
			return m, tea.Quit
		}
		return m, m.waitForEvent()
	}

	return m, nil
}

func (m *ScanModel) maybeFinish() bool {
	if m.done {
		return true
	}
	if m.tracker.IsComplete() {
		m.done = true
		return true
	}
	return false
}

// View renders one line per root plus the overall progress bar.
func (m *ScanModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Scanning..."))
	b.WriteString("\n")

	for _, root := range m.roots {
		state, ok := m.tracker.Snapshot(root)
		if !ok {
			continue
		}
		b.WriteString(m.rootLine(root, state))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(m.tracker.Fraction()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("press q to stop watching (scans keep running)"))
	b.WriteString("\n")

	return b.String()
}

func (m *ScanModel) rootLine(root string, s progress.State) string {
	stats := fmt.Sprintf("%d files (%s)",
		s.ScannedFiles, sizeStyle.Render(humanize.IBytes(uint64(s.ScannedSize))))

	switch s.Status {
	case progress.StatusPending:
		return pendingStyle.Render(fmt.Sprintf("  ○ %s: waiting", root))
	case progress.StatusInProgress:
		return fmt.Sprintf("  %s %s: %s", m.spinner.View(), root, stats)
	case progress.StatusCompleted:
		return fmt.Sprintf("  %s %s: %s", doneStyle.Render("✓"), root, stats)
	case progress.StatusFailed:
		return fmt.Sprintf("  %s %s: %s", failedStyle.Render("✗"), root, s.Err)
	default:
		return "  " + root
	}
}
