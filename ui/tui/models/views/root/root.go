// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.
package root

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/usersession/buildvars"
	"github.com/toeirei/usersession/internal/i18n"
	"github.com/toeirei/usersession/internal/logging"
	"github.com/toeirei/usersession/internal/session"
	"github.com/toeirei/usersession/ui/tui/models/components/header"
	windowtitle "github.com/toeirei/usersession/ui/tui/models/helpers/title"
	"github.com/toeirei/usersession/ui/tui/models/views/footer"
	"github.com/toeirei/usersession/ui/tui/models/views/login"
	"github.com/toeirei/usersession/ui/tui/models/views/status"
	"github.com/toeirei/usersession/ui/tui/util"
)

// Session is what the root view needs from a session.
type Session interface {
	status.Snapshotter
	SetUser(username string)
	Logout()
}

// *session.UserSession implements Session
var _ Session = (*session.UserSession)(nil)

type Options struct {
	// DefaultUser prefills the login prompt.
	DefaultUser string
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the top-level tea.Model. Session mutations run inside commands
// so observers that call tea.Program.Send never block the update loop.
type Model struct {
	session      Session
	opts         Options
	keys         KeyMap
	header       *header.Model
	status       *status.Model
	login        *login.Model
	footer       *footer.Model
	titleHandler *windowtitle.TitleHandler
}

func New(s Session, opts Options) *Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	title := i18n.T("app.title")
	m := &Model{
		session:      s,
		opts:         opts,
		keys:         DefaultKeyMap(),
		header:       header.New(title, i18n.T("app.version", buildvars.VersionOrDefault("dev"))),
		status:       status.New(s),
		login:        login.New(),
		footer:       footer.New(),
		titleHandler: windowtitle.NewHandler(title, " | "),
	}
	m.refreshKeys()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Sequence(
		m.titleHandler.Init(),
		windowtitle.Set(m.session.Snapshot().Username),
		util.AnnounceKeyMapCmd(m.keys),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd := m.titleHandler.Handle(msg); cmd != nil {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case login.SubmittedMsg:
		m.login.Close()
		m.refreshKeys()
		username := msg.Username
		return m, tea.Batch(
			func() tea.Msg {
				m.session.SetUser(username)
				return nil
			},
			util.AnnounceKeyMapCmd(m.keys),
		)

	case login.CancelledMsg:
		m.login.Close()
		m.refreshKeys()
		return m, util.AnnounceKeyMapCmd(m.keys)

	case util.SessionChangedMsg:
		logging.Debugf("tui: session changed, %s", msg.State)
		m.status.Update(msg)
		m.refreshKeys()
		return m, tea.Batch(
			windowtitle.Set(m.session.Snapshot().Username),
			util.AnnounceKeyMapCmd(m.keys),
		)

	case tea.WindowSizeMsg:
		return m, util.UpdateAll(msg, m.header, m.status, m.footer)
	}

	return m, util.UpdateAll(msg, m.status, m.login, m.footer)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Exit) {
		return tea.Quit
	}
	if m.login.Active() {
		return m.login.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.footer.ToggleExpanded()
		return nil
	case key.Matches(msg, m.keys.Login):
		prefill := m.opts.DefaultUser
		if st := m.session.Snapshot(); st.LoggedIn {
			prefill = st.Username
		}
		cmd, promptKeys := m.login.Open(prefill)
		m.refreshKeys()
		return tea.Batch(cmd, util.AnnounceKeyMapCmd(promptKeys, m.keys))
	case key.Matches(msg, m.keys.Logout):
		return func() tea.Msg {
			m.session.Logout()
			return nil
		}
	case key.Matches(msg, m.keys.Copy):
		return m.copyUsername()
	}
	return nil
}

func (m *Model) copyUsername() tea.Cmd {
	st := m.session.Snapshot()
	if !st.LoggedIn || st.Username == "" {
		return util.FlashCmd(i18n.T("clipboard.empty"))
	}
	write := m.opts.Clipboard
	return func() tea.Msg {
		if err := write(st.Username); err != nil {
			logging.Warnf("tui: clipboard write failed: %v", err)
			return util.FlashMsg(i18n.T("clipboard.failed", err))
		}
		return util.FlashMsg(i18n.T("clipboard.copied", st.Username))
	}
}

// refreshKeys enables the bindings that make sense for the current state.
// Disabled bindings neither match nor show up in the footer.
func (m *Model) refreshKeys() {
	prompting := m.login.Active()
	st := m.session.Snapshot()

	m.keys.Login.SetEnabled(!prompting)
	m.keys.Logout.SetEnabled(!prompting && st.LoggedIn)
	m.keys.Copy.SetEnabled(!prompting && st.LoggedIn && st.Username != "")
	m.keys.Help.SetEnabled(!prompting)
	m.keys.Quit.SetEnabled(!prompting)
}

// Changes is the number of session notifications rendered so far.
func (m *Model) Changes() int {
	return m.status.Changes()
}

// Prompting reports whether the login prompt is open.
func (m *Model) Prompting() bool {
	return m.login.Active()
}

func (m *Model) View() string {
	parts := []string{m.header.View(), m.status.View()}
	if m.login.Active() {
		parts = append(parts, m.login.View())
	}
	parts = append(parts, m.footer.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// *Model implements tea.Model
var _ tea.Model = (*Model)(nil)
