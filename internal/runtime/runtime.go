// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"io"
)

type (
	// ExecutionContext carries everything needed to execute one script.
	ExecutionContext struct {
		// Context is the Go context for cancellation.
		Context context.Context
		// Script is the shell script body to execute.
		Script string
		// Interpreter, when set, is executed with Script piped to its
		// stdin instead of running Script through the system shell with
		// -c. This mirrors `curl ... | sh` semantics for fetched
		// installers. Native runtime only.
		Interpreter string
		// RunAs names an existing account to execute as. Requires the
		// invoking process to hold the privileges to switch credentials.
		// Native runtime only.
		RunAs string
		// Env holds additional environment variables layered over the
		// host environment.
		Env map[string]string
		// WorkDir overrides the working directory.
		WorkDir string
		// Stdin, Stdout, Stderr wire the step's process I/O.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runtime executes scripts. Implementations report availability so the
	// runner can fail with a clear message instead of a exec error.
	Runtime interface {
		// Name returns the runtime name.
		Name() string
		// Available reports whether this runtime can execute on this host.
		Available() bool
		// Validate checks the context before execution.
		Validate(ctx *ExecutionContext) error
		// Execute runs the script. Process failures surface through the
		// Result exit code; infrastructure failures set Result.Error.
		Execute(ctx *ExecutionContext) *Result
	}
)

// ctxOrBackground returns the execution context's Go context, defaulting
// to context.Background.
func (c *ExecutionContext) ctxOrBackground() context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}
