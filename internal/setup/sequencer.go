// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package setup runs the ordered provisioning sequence: dependency
// install, schema migrations, optional superuser creation and data
// seeding. The sequence is strictly fail-fast: the first failing step
// aborts the run and its status becomes the process exit code.
package setup

import (
	"context"
	"fmt"
	"io"

	"github.com/gridpulse/gridpulse/internal/logging"
)

// Step is one provisioning operation in the sequence.
type Step struct {
	// Name identifies the step in progress output and errors.
	Name string
	// Skip, when non-nil and true at run time, causes the step to be
	// skipped silently.
	Skip func() bool
	// Run performs the step. A non-nil error aborts the sequence.
	Run func(ctx context.Context) error
}

// StepError wraps a step failure with the name of the failing step.
// The underlying error is preserved so exit codes from external tools
// survive (see ExitCode).
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Sequencer executes a fixed, ordered list of provisioning steps.
type Sequencer struct {
	steps []Step
	out   io.Writer
}

// NewSequencer builds a sequencer over the given steps. Progress and the
// completion message are written to out.
func NewSequencer(out io.Writer, steps ...Step) *Sequencer {
	return &Sequencer{steps: steps, out: out}
}

// Run executes the steps strictly in order. Execution stops at the first
// error; later steps never run. On full success the completion message is
// printed exactly once.
func (s *Sequencer) Run(ctx context.Context) error {
	total := len(s.steps)
	for i, st := range s.steps {
		if st.Skip != nil && st.Skip() {
			logging.Debugf("setup: skipping step %d/%d (%s)", i+1, total, st.Name)
			continue
		}
		fmt.Fprintf(s.out, "[%d/%d] %s\n", i+1, total, st.Name)
		if err := st.Run(ctx); err != nil {
			return &StepError{Step: st.Name, Err: err}
		}
	}
	fmt.Fprintln(s.out, "Setup complete!")
	return nil
}
