// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

// Package status renders the current login state.
package status

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/usersession/internal/i18n"
	"github.com/toeirei/usersession/internal/session"
	"github.com/toeirei/usersession/ui/tui/util"
)

var (
	loggedInStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	loggedOutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	counterStyle   = lipgloss.NewStyle().Faint(true)
	flashStyle     = lipgloss.NewStyle().Italic(true)
)

// Snapshotter is the read side of a session.
type Snapshotter interface {
	Snapshot() session.State
}

type Model struct {
	source  Snapshotter
	size    util.Size
	changes int
	flash   string
}

func New(source Snapshotter) *Model {
	return &Model{source: source}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case util.SessionChangedMsg:
		m.changes++
		m.flash = ""
	case util.FlashMsg:
		m.flash = string(msg)
	default:
		m.size.Update(msg)
	}
	return nil
}

// Changes is the number of session notifications received so far.
func (m Model) Changes() int {
	return m.changes
}

func (m Model) View() string {
	lines := []string{Line(m.source.Snapshot()), counterStyle.Render(i18n.T("status.changes", m.changes))}
	if m.flash != "" {
		lines = append(lines, flashStyle.Render(m.flash))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Line is the styled one-line form of st.
func Line(st session.State) string {
	if !st.LoggedIn {
		return loggedOutStyle.Render(i18n.T("status.logged_out"))
	}
	name := st.Username
	if name == "" {
		name = i18n.T("status.empty_username")
	}
	return loggedInStyle.Render(i18n.T("status.logged_in", name))
}

// *Model implements util.Model
var _ util.Model = (*Model)(nil)
