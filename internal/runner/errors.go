// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"fmt"

	"hostprep/internal/runtime"
)

// ErrStepFailed indicates a must-succeed step failed and halted the run.
var ErrStepFailed = errors.New("step failed")

// StepFailedError identifies the step that halted the run and the exit
// code the process must propagate.
type StepFailedError struct {
	Step     string
	ExitCode runtime.ExitCode
	Cause    error
}

func (e *StepFailedError) Error() string {
	msg := fmt.Sprintf("step %q failed with exit code %d", e.Step, e.ExitCode)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *StepFailedError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrStepFailed
}

// Is makes errors.Is(err, ErrStepFailed) hold even when a cause is
// attached.
func (e *StepFailedError) Is(target error) bool {
	return target == ErrStepFailed
}
