// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for the GridPulse provisioning tool.
//
// Usage:
//
//	go run . [flags]
//	./gridpulse-setup [flags]
//
// Running without a subcommand executes the full setup sequence:
// dependency install, schema migrations, optional superuser creation,
// sample data and tariff seeding. See --help for the individual phases.
package main

import (
	"os"

	"github.com/gridpulse/gridpulse/internal/cli"
	"github.com/gridpulse/gridpulse/internal/setup"
)

// version is set at build time using -ldflags, e.g.:
// go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		// The failing step already reported its own diagnostics; exit with
		// its status unmodified.
		os.Exit(setup.ExitCode(err))
	}
}
