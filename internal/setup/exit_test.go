// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package setup

import (
	"errors"
	"os/exec"
	"testing"
)

func TestExitCodeNil(t *testing.T) {
	if got := ExitCode(nil); got != ExitSuccess {
		t.Fatalf("expected %d for nil error, got %d", ExitSuccess, got)
	}
}

func TestExitCodeInternalError(t *testing.T) {
	err := &StepError{Step: "Generate sample data", Err: errors.New("insert failed")}
	if got := ExitCode(err); got != ExitFailure {
		t.Fatalf("expected %d for internal error, got %d", ExitFailure, got)
	}
}

func TestExitCodePropagatesInstallerExit(t *testing.T) {
	cmd := exec.Command("sh", "-c", "exit 7")
	runErr := cmd.Run()
	if runErr == nil {
		t.Fatal("expected the command to fail")
	}

	err := &StepError{Step: "Install dependencies", Err: runErr}
	if got := ExitCode(err); got != 7 {
		t.Fatalf("expected installer exit code 7 to propagate, got %d", got)
	}
}
