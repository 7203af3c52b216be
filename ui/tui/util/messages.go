// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.
package util

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/usersession/internal/session"
)

// SessionChangedMsg is sent into the program by the session observer.
// Views re-render from the session itself; State is what the observer saw.
type SessionChangedMsg struct {
	State session.State
}

// FlashMsg is a transient one-line notice shown under the status.
type FlashMsg string

func FlashCmd(text string) tea.Cmd {
	return func() tea.Msg { return FlashMsg(text) }
}
