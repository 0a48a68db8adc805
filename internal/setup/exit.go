// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package setup

import (
	"errors"
	"os/exec"
)

// Exit codes returned by the setup tool. External tooling can check these
// symbolically rather than using magic numbers.
const (
	// ExitSuccess indicates the full sequence completed.
	ExitSuccess = 0

	// ExitFailure indicates an internal step failed (migration error,
	// seeding error, etc.).
	ExitFailure = 1
)

// ExitCode maps an error from Sequencer.Run to a process exit code.
// When the failing step ran an external tool, that tool's exit code is
// propagated unmodified; internal failures map to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return ExitFailure
}
