// SPDX-License-Identifier: MPL-2.0

package runner

// Step lifecycle states.
const (
	// StatusPending means the step has not started.
	StatusPending StepStatus = "pending"
	// StatusRunning means the step is executing.
	StatusRunning StepStatus = "running"
	// StatusDone means the step finished with exit code zero.
	StatusDone StepStatus = "done"
	// StatusFailed means the step finished with a non-zero exit code or
	// an infrastructure error.
	StatusFailed StepStatus = "failed"
	// StatusSkipped means an earlier must-succeed step failed before this
	// one could start, or the run was a dry run.
	StatusSkipped StepStatus = "skipped"
)

// StepStatus is the lifecycle state of a step within a run.
type StepStatus string

// Terminal reports whether no further transition is allowed.
func (s StepStatus) Terminal() bool {
	switch s {
	case StatusDone, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// CanTransition reports whether moving to next is a legal lifecycle
// transition.
func (s StepStatus) CanTransition(next StepStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusRunning || next == StatusSkipped
	case StatusRunning:
		return next == StatusDone || next == StatusFailed
	}
	return false
}

func (s StepStatus) String() string { return string(s) }
