// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/toeirei/usersession/buildvars"
	"github.com/toeirei/usersession/internal/config"
	"github.com/toeirei/usersession/internal/i18n"
	"github.com/toeirei/usersession/internal/logging"
	"github.com/toeirei/usersession/internal/session"
	"github.com/toeirei/usersession/ui/tui"
)

const modulePath = "github.com/toeirei/usersession"

var (
	cfgFile         string
	verbose         bool
	showVersionFlag bool
	initialUser     string
)

var appConfig config.Config

// isTerminal is swapped out in tests.
var isTerminal = func(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

func setupDefaultServices(cmd *cobra.Command, _ []string) error {
	var err error
	var used string
	appConfig, used, err = config.LoadConfig[config.Config](cmd, config.Defaults(), &cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	level := appConfig.Log.Level
	if verbose {
		level = "debug"
	}
	logging.SetLevel(level)
	i18n.Init(appConfig.Language)

	// First run: persist the defaults so users have a file to edit.
	if used == "" {
		path, writeErr := config.WriteConfigFile(&appConfig, false)
		if writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Infof("%s", i18n.T("cli.default_config_written", path))
		}
	} else {
		logging.Debugf("using config file %s", used)
	}

	return nil
}

// Execute runs the CLI entrypoint. The root main package should call this
// function and handle process exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usersession",
		Short: i18n.T("cli.short"),
		Long: `usersession keeps a single user's login state in memory and shows
every change as it happens.

Running without a subcommand launches the interactive TUI when attached to a
terminal, and otherwise reads script commands from stdin.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Fprintln(cmd.OutOrStdout(), compositeVersion())
				os.Exit(0)
			}
			return setupDefaultServices(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession()
			if interactive(cmd) {
				// Log lines would tear the alternate screen.
				logging.SetOutput(io.Discard)
				defer logging.SetOutput(os.Stderr)
				return tui.Run(cmd.Context(), s, tui.Options{
					DefaultUser: appConfig.Login.DefaultUser,
					AltScreen:   true,
				})
			}
			logging.Debugf("stdin/stdout is not a terminal, reading script commands")
			return runScript(cmd.Context(), s, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().StringVar(&initialUser, "user", "", "log this user in before starting")
	cmd.PersistentFlags().String("language", "en", `UI language ("en", "de")`)
	cmd.PersistentFlags().String("log.level", "info", `Log level ("debug", "info", "warn", "error")`)

	cmd.AddCommand(newScriptCmd(), newVersionCmd())

	return cmd
}

func newSession() *session.UserSession {
	s := session.New()
	if initialUser != "" {
		s.SetUser(initialUser)
	}
	return s
}

func interactive(cmd *cobra.Command) bool {
	return isTerminalStream(cmd.InOrStdin()) && isTerminalStream(cmd.OutOrStdout())
}

func isTerminalStream(v any) bool {
	f, ok := v.(*os.File)
	return ok && isTerminal(f.Fd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			if c != "" {
				fmt.Fprintf(out, "commit:  %s\n", c)
			}
			if d != "" {
				fmt.Fprintf(out, "built:   %s\n", d)
			}
		},
	}
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	composite := v
	if c != "" && c != v {
		composite += " (" + c + ")"
	}
	if d != "" {
		composite += " built: " + d
	}
	return composite
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault("dev")
	resolvedCommit := buildvars.Commit
	resolvedDate := buildvars.Date

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record our version as a dependency.
		if resolvedVersion == "dev" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if resolvedCommit == "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if resolvedDate == "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// Show the commit rather than "dev" when that is all we know.
	if resolvedVersion == "dev" && resolvedCommit != "" {
		resolvedVersion = resolvedCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
