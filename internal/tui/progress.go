package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// VisitMsg carries the running count of scanned directories.
type VisitMsg int

// DoneMsg stops the progress display.
type DoneMsg struct{}

// ScanModel renders a spinner with a live directory counter while a scan is
// running. It is driven externally via VisitMsg/DoneMsg sends.
type ScanModel struct {
	spinner  spinner.Model
	visited  int
	quitting bool
}

// NewScanModel creates the scan progress model.
func NewScanModel() ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return ScanModel{spinner: s}
}

func (m ScanModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case VisitMsg:
		m.visited = int(msg)
		return m, nil
	case DoneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		// The scan itself is cancelled via the signal context; the
		// display just keeps spinning until told to stop.
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m ScanModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s Scanning for projects... %s",
		m.spinner.View(),
		SubtleStyle.Render(fmt.Sprintf("%d directories", m.visited)))
}
