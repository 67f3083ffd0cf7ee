// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes scripts with the embedded mvdan/sh interpreter.
// It behaves the same on every host regardless of which shell is
// installed, at the cost of running in-process: it cannot switch
// credentials, so plan validation rejects run_as on virtual steps.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string { return "virtual" }

// Available reports true; the interpreter is built in.
func (r *VirtualRuntime) Available() bool { return true }

// Validate parses the script to catch syntax errors before execution and
// rejects contexts the in-process interpreter cannot honor.
func (r *VirtualRuntime) Validate(ctx *ExecutionContext) error {
	if strings.TrimSpace(ctx.Script) == "" {
		return fmt.Errorf("no script content to execute")
	}
	if ctx.RunAs != "" {
		return fmt.Errorf("virtual runtime runs in-process and cannot switch to account %q", ctx.RunAs)
	}
	if ctx.Interpreter != "" {
		return fmt.Errorf("virtual runtime does not support a custom interpreter")
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(ctx.Script), "script"); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Execute runs the script in the embedded interpreter.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	if err := r.Validate(ctx); err != nil {
		return NewErrorResult(1, err)
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(ctx.Script), "script")
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse script: %w", err))
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(buildEnv(ctx.Env)...)),
		interp.StdIO(ctx.Stdin, ctx.Stdout, ctx.Stderr),
	}
	if ctx.WorkDir != "" {
		opts = append(opts, interp.Dir(ctx.WorkDir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	if err := runner.Run(ctx.ctxOrBackground(), prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return NewExitCodeResult(ExitCode(status))
		}
		return NewErrorResult(1, fmt.Errorf("script execution failed: %w", err))
	}

	return NewSuccessResult()
}
