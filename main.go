// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for usersession.
//
// Usage:
//
//	go run . [flags]
//	./usersession [flags]
//
// See --help for options.
package main

import (
	"os"

	"github.com/toeirei/usersession/internal/logging"
	"github.com/toeirei/usersession/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("usersession: %v", err)
		os.Exit(1)
	}
}
