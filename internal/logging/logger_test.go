// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// swapLogger replaces L with a buffer-backed logger for the duration of the test.
func swapLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	t.Cleanup(func() { L = prev })
	return &buf
}

func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	buf := swapLogger(t)
	L.SetLevel(clog.DebugLevel)

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")

	out := buf.String()
	for _, want := range []string{"hello dbg", "info 1", "warn", "err E"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output; got: %s", want, out)
		}
	}
}

func TestSetLevel_FiltersDebug(t *testing.T) {
	buf := swapLogger(t)

	SetLevel("info")
	Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug line should be filtered at info level; got: %s", buf.String())
	}

	SetLevel("DEBUG")
	Debugf("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug line should pass at debug level; got: %s", buf.String())
	}
}

func TestSetLevel_UnknownFallsBackToInfo(t *testing.T) {
	swapLogger(t)
	SetLevel("chatty")
	if L.GetLevel() != clog.InfoLevel {
		t.Fatalf("expected info level, got %v", L.GetLevel())
	}
}

func TestSetOutput(t *testing.T) {
	swapLogger(t)
	var other bytes.Buffer
	SetOutput(&other)
	Warnf("redirected")
	if !strings.Contains(other.String(), "redirected") {
		t.Fatalf("expected output on redirected writer; got: %s", other.String())
	}
}
