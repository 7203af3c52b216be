// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.
package footer

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/usersession/ui/tui/util"
)

// Model renders the key bindings most recently announced through
// util.AnnounceKeyMapMsg.
type Model struct {
	size   util.Size
	help   help.Model
	keyMap help.KeyMap
}

func New() *Model {
	return &Model{help: help.New()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.size.Update(msg) {
		m.help.Width = m.size.Width
		return nil
	}
	if msg, ok := msg.(util.AnnounceKeyMapMsg); ok {
		m.keyMap = msg.KeyMap
	}
	return nil
}

func (m Model) View() string {
	if m.keyMap == nil {
		return ""
	}
	return lipgloss.
		NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		Render(m.help.View(m.keyMap))
}

func (m *Model) ToggleExpanded() {
	m.help.ShowAll = !m.help.ShowAll
}

func (m Model) Expanded() bool {
	return m.help.ShowAll
}

// *Model implements util.Model
var _ util.Model = (*Model)(nil)
