// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

// Package login is the username prompt. It only collects a name; the
// caller decides what to do with it.
package login

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/usersession/internal/i18n"
	"github.com/toeirei/usersession/ui/tui/util"
)

// SubmittedMsg carries the entered username, unmodified.
type SubmittedMsg struct {
	Username string
}

// CancelledMsg is sent when the prompt is dismissed without submitting.
type CancelledMsg struct{}

type KeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Submit, km.Cancel}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{km.Submit, km.Cancel}}
}

// *KeyMap implements help.KeyMap
var _ help.KeyMap = (*KeyMap)(nil)

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", i18n.T("key.submit")),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", i18n.T("key.cancel")),
		),
	}
}

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

type Model struct {
	input  textinput.Model
	keys   KeyMap
	active bool
}

func New() *Model {
	input := textinput.New()
	input.Placeholder = i18n.T("prompt.placeholder")
	input.Prompt = i18n.T("prompt.title") + ": "
	input.CharLimit = 256
	return &Model{input: input, keys: DefaultKeyMap()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Open shows the prompt prefilled with value.
func (m *Model) Open(value string) (tea.Cmd, help.KeyMap) {
	m.active = true
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus(), m.keys
}

// Close hides the prompt and clears its value.
func (m *Model) Close() {
	m.active = false
	m.input.Blur()
	m.input.Reset()
}

func (m Model) Active() bool {
	return m.active
}

func (m Model) Value() string {
	return m.input.Value()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			username := m.input.Value()
			return func() tea.Msg { return SubmittedMsg{Username: username} }
		case key.Matches(msg, m.keys.Cancel):
			return func() tea.Msg { return CancelledMsg{} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m Model) View() string {
	if !m.active {
		return ""
	}
	return boxStyle.Render(m.input.View())
}

// *Model implements util.Model
var _ util.Model = (*Model)(nil)
