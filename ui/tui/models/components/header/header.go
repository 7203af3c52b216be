// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.
package header

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/usersession/ui/tui/util"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

type Model struct {
	size    util.Size
	title   string
	version string
}

func New(title, version string) *Model {
	return &Model{title: title, version: version}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	m.size.Update(msg)
	return nil
}

func (m Model) View() string {
	line := titleStyle.Render(m.title)
	if m.version != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, " ", lipgloss.NewStyle().Faint(true).Render(m.version))
	}
	return lipgloss.
		NewStyle().
		Border(lipgloss.NormalBorder(), false).
		BorderBottom(true).
		Render(lipgloss.PlaceHorizontal(m.size.Width, lipgloss.Center, line))
}

// *Model implements util.Model
var _ util.Model = (*Model)(nil)
