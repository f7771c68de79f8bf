// Package ui renders live branch-processing progress on a TTY.
//
// The pipeline itself stays sequential; it only posts BranchMsg
// updates to the running program and a DoneMsg when it finishes.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BranchMsg announces the branch currently being processed.
type BranchMsg struct {
	Name  string
	Index int
	Total int
}

// DoneMsg tells the progress display to exit.
type DoneMsg struct{}

// Model is the bubbletea model for the progress line.
type Model struct {
	spin   spinner.Model
	branch string
	index  int
	total  int
	done   bool
}

// New returns a fresh progress model.
func New() Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("39"))),
	)
	return Model{spin: s}
}

func (m Model) Init() tea.Cmd { return m.spin.Tick }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BranchMsg:
		m.branch, m.index, m.total = msg.Name, msg.Index, msg.Total
		return m, nil
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		// The pipeline has no cancellation path; ctrl+c only drops
		// the display.
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.done || m.branch == "" {
		return ""
	}
	return fmt.Sprintf("%s %s (%d/%d)\n", m.spin.View(), m.branch, m.index, m.total)
}
