// SPDX-License-Identifier: MPL-2.0

package runner

import "testing"

func TestStepStatus_CanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from StepStatus
		to   StepStatus
		want bool
	}{
		{StatusPending, StatusRunning, true},
		{StatusPending, StatusSkipped, true},
		{StatusPending, StatusDone, false},
		{StatusRunning, StatusDone, true},
		{StatusRunning, StatusFailed, true},
		{StatusRunning, StatusSkipped, false},
		{StatusDone, StatusRunning, false},
		{StatusFailed, StatusRunning, false},
		{StatusSkipped, StatusRunning, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStepStatus_Terminal(t *testing.T) {
	t.Parallel()

	for _, s := range []StepStatus{StatusDone, StatusFailed, StatusSkipped} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []StepStatus{StatusPending, StatusRunning} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
