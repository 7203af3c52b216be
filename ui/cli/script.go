// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toeirei/usersession/internal/i18n"
	"github.com/toeirei/usersession/internal/session"
)

var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMissingArgument    = errors.New("missing argument")
	ErrUnexpectedArgument = errors.New("unexpected argument")
)

// ScriptError reports the script line that could not be applied.
type ScriptError struct {
	Line int
	Text string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

func newScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script [file]",
		Short: "Apply login/logout commands from a file or stdin",
		Long: `Reads one command per line and applies it to a single in-memory session:

  login <name>   log <name> in ("login \"\"" logs in with an empty name)
  logout         log out
  status         print the current state

Blank lines and lines starting with # are ignored. The new state is printed
after every change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening script: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runScript(cmd.Context(), newSession(), in, cmd.OutOrStdout())
		},
	}
}

// runScript applies the commands read from in to s, printing the state to
// out after every change and on "status". It stops at the first bad line.
func runScript(ctx context.Context, s *session.UserSession, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cancel := s.OnChange(func() {
		fmt.Fprintln(out, statusLine(s.Snapshot()))
	})
	defer cancel()

	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := applyLine(s, text, out); err != nil {
			return &ScriptError{Line: lineNo, Text: text, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return nil
}

func applyLine(s *session.UserSession, text string, out io.Writer) error {
	verb, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "login":
		if arg == "" {
			return ErrMissingArgument
		}
		username, err := parseUsername(arg)
		if err != nil {
			return err
		}
		s.SetUser(username)
	case "logout":
		if arg != "" {
			return ErrUnexpectedArgument
		}
		s.Logout()
	case "status":
		if arg != "" {
			return ErrUnexpectedArgument
		}
		fmt.Fprintln(out, statusLine(s.Snapshot()))
	default:
		return ErrUnknownCommand
	}
	return nil
}

// parseUsername accepts a bare word or a Go-quoted string, which is the
// only way to pass an empty name or one with surrounding spaces.
func parseUsername(arg string) (string, error) {
	if strings.HasPrefix(arg, `"`) {
		unquoted, err := strconv.Unquote(arg)
		if err != nil {
			return "", fmt.Errorf("invalid quoted name: %w", err)
		}
		return unquoted, nil
	}
	return arg, nil
}

func statusLine(st session.State) string {
	if !st.LoggedIn {
		return i18n.T("cli.status_logged_out")
	}
	name := st.Username
	if name == "" {
		name = `""`
	}
	return i18n.T("cli.status_logged_in", name)
}
