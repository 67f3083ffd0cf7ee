// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError_Message(t *testing.T) {
	t.Parallel()

	bare := &ExitError{Code: 7}
	if bare.Error() != "exit status 7" {
		t.Errorf("Error() = %q", bare.Error())
	}

	cause := errors.New("step \"rust-toolchain\" failed")
	wrapped := &ExitError{Code: 1, Err: cause}
	if wrapped.Error() != cause.Error() {
		t.Errorf("Error() = %q, want the cause message", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Unwrap does not expose the cause")
	}
}

func TestExitError_SurvivesWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("run failed: %w", &ExitError{Code: 100})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("errors.As does not find the ExitError")
	}
	if exitErr.Code != 100 {
		t.Errorf("Code = %d, want 100", exitErr.Code)
	}
}
