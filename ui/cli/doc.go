// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface using Cobra. It loads
// configuration, sets up logging and i18n, and hands a fresh session to
// either the TUI or the line-based script runner.
package cli
