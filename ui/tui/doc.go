// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui is the interactive view of a session. It subscribes to the
// session and re-renders whenever the session notifies.
package tui
