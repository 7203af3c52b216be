// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.
package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/usersession/internal/logging"
	"github.com/toeirei/usersession/internal/session"
	"github.com/toeirei/usersession/ui/tui/models/views/root"
	"github.com/toeirei/usersession/ui/tui/util"
)

type Options struct {
	DefaultUser string
	AltScreen   bool
	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// Run blocks until the user quits or ctx is cancelled. The observer it
// registers on s is removed before Run returns.
func Run(ctx context.Context, s *session.UserSession, opts Options) error {
	model := root.New(s, root.Options{
		DefaultUser: opts.DefaultUser,
		Clipboard:   opts.Clipboard,
	})

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(model, progOpts...)

	// Send blocks until the event loop takes the message, so s must only
	// be mutated from commands or other goroutines, never from Update.
	cancel := s.OnChange(func() {
		p.Send(util.SessionChangedMsg{State: s.Snapshot()})
	})
	defer cancel()

	logging.Debugf("tui: starting")
	_, err := p.Run()
	logging.Debugf("tui: stopped (%d change(s) seen)", model.Changes())
	return err
}
