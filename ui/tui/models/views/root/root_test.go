// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.
package root

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/usersession/internal/session"
	"github.com/toeirei/usersession/ui/tui/util"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and any batched commands, returning the produced messages.
// Only use it on commands that do not tick.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func newModel(t *testing.T, s *session.UserSession) (*Model, *[]string) {
	t.Helper()
	var copied []string
	m := New(s, Options{
		DefaultUser: "guest",
		Clipboard: func(v string) error {
			copied = append(copied, v)
			return nil
		},
	})
	return m, &copied
}

func assertView(t *testing.T, m *Model, want string) {
	t.Helper()
	if view := m.View(); !strings.Contains(view, want) {
		t.Fatalf("expected view to contain %q, got:\n%s", want, view)
	}
}

func TestView_ShowsInitialState(t *testing.T) {
	s := session.New()
	m, _ := newModel(t, s)
	assertView(t, m, "Not logged in")

	s.SetUser("alice")
	assertView(t, m, "Logged in as alice")
}

func TestLogoutKey_MutatesSessionAndRerendersOnNotify(t *testing.T) {
	s := session.New()
	s.SetUser("alice")
	m, _ := newModel(t, s)

	_, cmd := m.Update(keyRunes("o"))
	if cmd == nil {
		t.Fatalf("expected a logout command")
	}
	drain(cmd)
	if s.IsLoggedIn() {
		t.Fatalf("logout command should log the session out")
	}

	m.Update(util.SessionChangedMsg{State: s.Snapshot()})
	assertView(t, m, "Not logged in")
	if got := m.Changes(); got != 1 {
		t.Fatalf("expected 1 change rendered, got %d", got)
	}
}

func TestLoginPrompt_SubmitsTypedName(t *testing.T) {
	s := session.New()
	m, _ := newModel(t, s)

	m.Update(keyRunes("l"))
	if !m.Prompting() {
		t.Fatalf("l should open the login prompt")
	}
	assertView(t, m, "guest")

	// Replace the prefilled default with a new name.
	for range "guest" {
		m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m.Update(keyRunes("bob"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one submit message, got %v", msgs)
	}

	_, cmd = m.Update(msgs[0])
	drain(cmd)
	if m.Prompting() {
		t.Fatalf("prompt should close after submit")
	}
	if got := s.Snapshot(); got != (session.State{LoggedIn: true, Username: "bob"}) {
		t.Fatalf("expected bob to be logged in, got %v", got)
	}

	m.Update(util.SessionChangedMsg{State: s.Snapshot()})
	assertView(t, m, "Logged in as bob")
}

func TestLoginPrompt_KeysAreTypedNotHandled(t *testing.T) {
	s := session.New()
	s.SetUser("alice")
	m, _ := newModel(t, s)

	m.Update(keyRunes("l"))
	m.Update(keyRunes("q"))
	m.Update(keyRunes("o"))

	if !m.Prompting() {
		t.Fatalf("q should be typed into the prompt, not quit")
	}
	if !s.IsLoggedIn() {
		t.Fatalf("o should be typed into the prompt, not log out")
	}
	assertView(t, m, "aliceqo")
}

func TestLoginPrompt_Cancel(t *testing.T) {
	s := session.New()
	m, _ := newModel(t, s)

	m.Update(keyRunes("l"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	for _, msg := range drain(cmd) {
		m.Update(msg)
	}

	if m.Prompting() {
		t.Fatalf("esc should close the prompt")
	}
	if s.IsLoggedIn() {
		t.Fatalf("cancel must not log anyone in")
	}
}

func TestLoginPrompt_EmptyNameIsAccepted(t *testing.T) {
	s := session.New()
	m := New(s, Options{Clipboard: func(string) error { return nil }})

	m.Update(keyRunes("l"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for _, msg := range drain(cmd) {
		_, next := m.Update(msg)
		drain(next)
	}

	if !s.IsLoggedIn() || s.Username() != "" {
		t.Fatalf("expected logged in with empty username, got %v", s.Snapshot())
	}
	m.Update(util.SessionChangedMsg{State: s.Snapshot()})
	assertView(t, m, "(empty username)")
}

func TestCopyKey(t *testing.T) {
	s := session.New()
	s.SetUser("alice")
	m, copied := newModel(t, s)
	m.refreshKeys()

	_, cmd := m.Update(keyRunes("y"))
	for _, msg := range drain(cmd) {
		m.Update(msg)
	}

	if len(*copied) != 1 || (*copied)[0] != "alice" {
		t.Fatalf("expected alice on the clipboard, got %v", *copied)
	}
	assertView(t, m, `Copied "alice" to clipboard`)
}

func TestCopyKey_DisabledWhenLoggedOut(t *testing.T) {
	s := session.New()
	m, copied := newModel(t, s)

	if _, cmd := m.Update(keyRunes("y")); cmd != nil {
		t.Fatalf("copy should be disabled while logged out")
	}
	if len(*copied) != 0 {
		t.Fatalf("nothing should be copied, got %v", *copied)
	}
}

func TestCopyKey_ClipboardError(t *testing.T) {
	s := session.New()
	s.SetUser("alice")
	m := New(s, Options{Clipboard: func(string) error { return errors.New("no display") }})

	_, cmd := m.Update(keyRunes("y"))
	for _, msg := range drain(cmd) {
		m.Update(msg)
	}
	assertView(t, m, "Clipboard unavailable: no display")
}

func TestQuitKeys(t *testing.T) {
	s := session.New()
	m, _ := newModel(t, s)

	for _, k := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		msgs := drain(cmd)
		if len(msgs) != 1 {
			t.Fatalf("expected quit message for %q, got %v", k.String(), msgs)
		}
		if _, ok := msgs[0].(tea.QuitMsg); !ok {
			t.Fatalf("expected tea.QuitMsg for %q, got %T", k.String(), msgs[0])
		}
	}
}

func TestHelpKey_TogglesFooter(t *testing.T) {
	s := session.New()
	m, _ := newModel(t, s)
	m.Update(util.AnnounceKeyMapMsg{KeyMap: m.keys})

	short := m.View()
	m.Update(keyRunes("?"))
	if !m.footer.Expanded() {
		t.Fatalf("? should expand the footer")
	}
	if m.View() == short {
		t.Fatalf("expanded help should change the view")
	}
}

func TestRefreshKeys_FollowsState(t *testing.T) {
	s := session.New()
	m, _ := newModel(t, s)

	if m.keys.Logout.Enabled() {
		t.Fatalf("logout should be disabled while logged out")
	}

	s.SetUser("alice")
	m.Update(util.SessionChangedMsg{State: s.Snapshot()})
	if !m.keys.Logout.Enabled() || !m.keys.Copy.Enabled() {
		t.Fatalf("logout and copy should be enabled while logged in")
	}

	m.Update(keyRunes("l"))
	if m.keys.Login.Enabled() || m.keys.Quit.Enabled() {
		t.Fatalf("root bindings should be disabled while prompting")
	}
	if !m.keys.Exit.Enabled() {
		t.Fatalf("ctrl+c must stay enabled")
	}
}
