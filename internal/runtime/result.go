// SPDX-License-Identifier: MPL-2.0

package runtime

// Result is the outcome of one script execution.
type Result struct {
	// ExitCode is the process exit status. Non-zero with a nil Error is a
	// normal process failure; the failing command already wrote its own
	// diagnostics.
	ExitCode ExitCode
	// Error is set for infrastructure failures: the process could not be
	// started at all, credentials could not be resolved, the script did
	// not parse.
	Error error
}

// NewSuccessResult returns a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult returns a Result for a normal non-zero process exit.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// NewErrorResult returns a Result for an infrastructure failure.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// Failed reports whether the execution failed for any reason.
func (r *Result) Failed() bool {
	return r.Error != nil || !r.ExitCode.IsSuccess()
}
