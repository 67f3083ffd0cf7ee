// SPDX-License-Identifier: MPL-2.0

package planfile

// Step kinds.
const (
	// KindPackages refreshes the package index and installs the named
	// packages in one package-manager invocation.
	KindPackages StepKind = "packages"
	// KindInstaller fetches a remote installer script and pipes it into a
	// shell, optionally as an unprivileged account.
	KindInstaller StepKind = "installer"
	// KindScript executes an inline shell script.
	KindScript StepKind = "script"
)

// Runtime modes for script steps.
const (
	// RuntimeNative executes through the system shell.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual executes through the embedded shell interpreter.
	RuntimeVirtual RuntimeMode = "virtual"
)

// DefaultInterpreter is the shell installer scripts are piped into when a
// step does not name one.
const DefaultInterpreter = "sh"

// DefaultFileName is the plan file looked up in the working directory when
// no path is given.
const DefaultFileName = "hostprep.cue"

type (
	// StepKind selects how a step is executed.
	StepKind string

	// RuntimeMode selects the execution runtime for script steps.
	RuntimeMode string

	// Plan is an ordered sequence of provisioning steps.
	Plan struct {
		// Name identifies the plan in logs and reports.
		Name string `json:"name"`
		// Description is free-form documentation.
		Description string `json:"description"`
		// Steps run strictly in order.
		Steps []Step `json:"steps"`

		// FilePath is where the plan was loaded from (not part of the
		// document).
		FilePath string `json:"-"`
	}

	// Step is one ordered unit of work against the host.
	Step struct {
		// Name must be unique within the plan.
		Name string `json:"name"`
		// Description is shown by `hostprep steps`.
		Description string `json:"description"`
		// Kind selects how the step is executed.
		Kind StepKind `json:"kind"`
		// MustSucceed steps halt the run on failure.
		MustSucceed bool `json:"must_succeed"`
		// RunAs names an existing unprivileged account to execute as.
		RunAs string `json:"run_as"`
		// Packages lists OS packages for KindPackages.
		Packages []string `json:"packages"`
		// URL is the remote installer location for KindInstaller.
		URL string `json:"url"`
		// SHA256 pins the installer content for KindInstaller.
		SHA256 string `json:"sha256"`
		// Interpreter is the shell the fetched installer is piped into.
		Interpreter string `json:"interpreter"`
		// Script is the inline body for KindScript.
		Script string `json:"script"`
		// Runtime selects the execution runtime for KindScript.
		Runtime RuntimeMode `json:"runtime"`
		// Env sets additional environment variables for the step.
		Env map[string]string `json:"env"`
	}
)

// IsValid reports whether k is a known step kind.
func (k StepKind) IsValid() bool {
	switch k {
	case KindPackages, KindInstaller, KindScript:
		return true
	}
	return false
}

// IsValid reports whether m is a known runtime mode.
func (m RuntimeMode) IsValid() bool {
	return m == RuntimeNative || m == RuntimeVirtual
}

// InterpreterOrDefault returns the step's interpreter, falling back to
// DefaultInterpreter.
func (s *Step) InterpreterOrDefault() string {
	if s.Interpreter != "" {
		return s.Interpreter
	}
	return DefaultInterpreter
}

// RuntimeOrDefault returns the step's runtime mode, falling back to def.
func (s *Step) RuntimeOrDefault(def RuntimeMode) RuntimeMode {
	if s.Runtime != "" {
		return s.Runtime
	}
	if def != "" {
		return def
	}
	return RuntimeNative
}
