// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type (
	// NativeRuntime executes scripts through the system shell, or pipes
	// them into a named interpreter when the context asks for one. It is
	// the only runtime that supports privilege drop.
	NativeRuntime struct {
		// Shell overrides the default shell.
		Shell string
	}
)

// NewNativeRuntime creates a native runtime using the default shell.
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string { return "native" }

// Available reports whether a usable shell exists on this host.
func (r *NativeRuntime) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// Validate checks the context before execution.
func (r *NativeRuntime) Validate(ctx *ExecutionContext) error {
	if strings.TrimSpace(ctx.Script) == "" {
		return fmt.Errorf("no script content to execute")
	}
	if ctx.RunAs != "" {
		if _, err := lookupCredential(ctx.RunAs); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the script. With an interpreter set, the script body is
// piped to the interpreter's stdin; otherwise the system shell runs it
// via -c.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	var cmd *exec.Cmd

	if ctx.Interpreter != "" {
		path, err := exec.LookPath(ctx.Interpreter)
		if err != nil {
			return NewErrorResult(1, fmt.Errorf("interpreter %q not found: %w", ctx.Interpreter, err))
		}
		cmd = exec.CommandContext(ctx.ctxOrBackground(), path)
		cmd.Stdin = strings.NewReader(ctx.Script)
	} else {
		shell, err := r.getShell()
		if err != nil {
			return NewErrorResult(1, err)
		}
		cmd = exec.CommandContext(ctx.ctxOrBackground(), shell, "-c", ctx.Script)
		cmd.Stdin = ctx.Stdin
	}

	env := ctx.Env

	if ctx.RunAs != "" {
		cred, err := lookupCredential(ctx.RunAs)
		if err != nil {
			return NewErrorResult(1, err)
		}
		applyCredential(cmd, cred)

		// The kernel switches credentials, not the session; point the
		// usual account variables at the target user ourselves.
		merged := make(map[string]string, len(env)+3)
		for k, v := range env {
			merged[k] = v
		}
		merged["HOME"] = cred.HomeDir
		merged["USER"] = cred.Username
		merged["LOGNAME"] = cred.Username
		env = merged
	}

	cmd.Env = buildEnv(env)
	if ctx.WorkDir != "" {
		cmd.Dir = ctx.WorkDir
	}
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return NewExitCodeResult(ExitCode(exitErr.ExitCode()))
		}
		return NewErrorResult(1, fmt.Errorf("failed to execute script: %w", err))
	}

	return NewSuccessResult()
}

// getShell picks the shell for -c execution: configured value, $SHELL,
// then bash, then sh.
func (r *NativeRuntime) getShell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell, nil
	}
	if bash, err := exec.LookPath("bash"); err == nil {
		return bash, nil
	}
	if sh, err := exec.LookPath("sh"); err == nil {
		return sh, nil
	}
	return "", fmt.Errorf("no shell found")
}
