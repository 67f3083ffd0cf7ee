// SPDX-License-Identifier: MPL-2.0

package planfile

import (
	"errors"
	"fmt"
)

// ErrInvalidPlan is the sentinel error wrapped by plan validation failures.
var ErrInvalidPlan = errors.New("invalid plan")

// StepError reports a validation failure on a single step.
type StepError struct {
	// Step is the step name, or its index rendered as steps[i] when the
	// name itself is the problem.
	Step string
	// Reason describes the violated constraint.
	Reason string
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %s", e.Step, e.Reason)
}

// Unwrap returns ErrInvalidPlan so callers can use errors.Is.
func (e *StepError) Unwrap() error { return ErrInvalidPlan }

// Validate enforces constraints the CUE schema cannot express: per-kind
// required fields, step name uniqueness, and the privilege-drop restriction
// on the in-process runtime.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: plan has no steps", ErrInvalidPlan)
	}

	seen := make(map[string]int, len(p.Steps))
	for i := range p.Steps {
		step := &p.Steps[i]

		if first, dup := seen[step.Name]; dup {
			return &StepError{
				Step:   step.Name,
				Reason: fmt.Sprintf("duplicate step name (first used by steps[%d])", first),
			}
		}
		seen[step.Name] = i

		if err := step.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks a single step's kind-specific constraints.
func (s *Step) Validate() error {
	if !s.Kind.IsValid() {
		return &StepError{Step: s.Name, Reason: fmt.Sprintf("unknown kind %q", s.Kind)}
	}

	switch s.Kind {
	case KindPackages:
		if len(s.Packages) == 0 {
			return &StepError{Step: s.Name, Reason: "packages step lists no packages"}
		}
		if s.URL != "" || s.Script != "" {
			return &StepError{Step: s.Name, Reason: "packages step must not set url or script"}
		}
		if s.RunAs != "" {
			return &StepError{Step: s.Name, Reason: "packages step runs as the invoking user; run_as is not allowed"}
		}

	case KindInstaller:
		if s.URL == "" {
			return &StepError{Step: s.Name, Reason: "installer step requires url"}
		}
		if s.Script != "" || len(s.Packages) > 0 {
			return &StepError{Step: s.Name, Reason: "installer step must not set script or packages"}
		}
		if s.Runtime != "" {
			return &StepError{Step: s.Name, Reason: "installer step always uses the native runtime; runtime is not allowed"}
		}

	case KindScript:
		if s.Script == "" {
			return &StepError{Step: s.Name, Reason: "script step requires script"}
		}
		if s.URL != "" || len(s.Packages) > 0 {
			return &StepError{Step: s.Name, Reason: "script step must not set url or packages"}
		}
		if s.Runtime != "" && !s.Runtime.IsValid() {
			return &StepError{Step: s.Name, Reason: fmt.Sprintf("unknown runtime %q", s.Runtime)}
		}
		// The virtual runtime executes in-process and cannot change
		// credentials.
		if s.RunAs != "" && s.Runtime == RuntimeVirtual {
			return &StepError{Step: s.Name, Reason: "run_as requires the native runtime"}
		}
	}

	return nil
}
