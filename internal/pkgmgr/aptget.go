// SPDX-License-Identifier: MPL-2.0

package pkgmgr

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"hostprep/internal/runtime"
)

// aptGetBin is the apt-get executable name.
const aptGetBin = "apt-get"

type (
	// CommandRunner executes one external command. Injectable so tests can
	// record invocations instead of mutating the host.
	CommandRunner func(ctx context.Context, env []string, stdout, stderr io.Writer, name string, args ...string) error

	// AptGet installs packages through apt-get.
	AptGet struct {
		run    CommandRunner
		stdout io.Writer
		stderr io.Writer
	}

	// Option configures an AptGet.
	Option func(*AptGet)
)

// WithCommandRunner overrides command execution.
func WithCommandRunner(run CommandRunner) Option {
	return func(a *AptGet) { a.run = run }
}

// WithOutput redirects the package manager's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *AptGet) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// NewAptGet creates an apt-get front-end.
func NewAptGet(opts ...Option) *AptGet {
	a := &AptGet{
		run:    execRunner,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the package manager name.
func (a *AptGet) Name() string { return aptGetBin }

// Available reports whether apt-get exists on this host.
func (a *AptGet) Available() bool {
	_, err := exec.LookPath(aptGetBin)
	return err == nil
}

// InstallPackages refreshes the package index and installs pkgs in a
// single invocation. The refresh always runs first; a refresh failure
// aborts before any install is attempted.
func (a *AptGet) InstallPackages(ctx context.Context, pkgs []string) *runtime.Result {
	env := append(os.Environ(), "DEBIAN_FRONTEND=noninteractive")

	if res := a.invoke(ctx, env, "update"); res.Failed() {
		return res
	}

	args := append([]string{"install", "-y"}, pkgs...)
	return a.invoke(ctx, env, args...)
}

func (a *AptGet) invoke(ctx context.Context, env []string, args ...string) *runtime.Result {
	err := a.run(ctx, env, a.stdout, a.stderr, aptGetBin, args...)
	if err == nil {
		return runtime.NewSuccessResult()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return runtime.NewExitCodeResult(runtime.ExitCode(exitErr.ExitCode()))
	}
	return runtime.NewErrorResult(1, err)
}

// execRunner is the production CommandRunner.
func execRunner(ctx context.Context, env []string, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
