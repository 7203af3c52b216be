// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging wraps a process-wide charmbracelet logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Callers should use the helper functions
// below rather than holding on to L directly.
var L = clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "usersession"})

// SetLevel sets the level of L from its name ("debug", "info", "warn",
// "error"). Unknown names fall back to info.
func SetLevel(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		L.SetLevel(clog.DebugLevel)
	case "warn", "warning":
		L.SetLevel(clog.WarnLevel)
	case "error":
		L.SetLevel(clog.ErrorLevel)
	default:
		L.SetLevel(clog.InfoLevel)
	}
}

// SetOutput redirects L. The TUI uses this to keep log lines off the
// alternate screen.
func SetOutput(w io.Writer) {
	L.SetOutput(w)
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}
