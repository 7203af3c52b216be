// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.
package util

import tea "github.com/charmbracelet/bubbletea"

// Model is a child view owned by a parent tea.Model. Unlike tea.Model it
// updates in place.
type Model interface {
	Init() tea.Cmd
	Update(tea.Msg) tea.Cmd
	View() string
}

// UpdateAll forwards msg to every model and batches the resulting commands.
func UpdateAll(msg tea.Msg, models ...Model) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(models))
	for _, m := range models {
		cmds = append(cmds, m.Update(msg))
	}
	return tea.Batch(cmds...)
}
