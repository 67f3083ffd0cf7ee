// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"io"
	"os"
	"time"

	"hostprep/internal/issue"
	"hostprep/internal/report"
	"hostprep/internal/runtime"
	"hostprep/pkg/planfile"

	"github.com/charmbracelet/log"
)

type (
	// PackageInstaller abstracts the host package manager for packages
	// steps.
	PackageInstaller interface {
		Name() string
		Available() bool
		InstallPackages(ctx context.Context, pkgs []string) *runtime.Result
	}

	// InstallerSource fetches remote installer scripts for installer
	// steps.
	InstallerSource interface {
		Script(ctx context.Context, url, sha256 string) ([]byte, error)
	}

	// Runner executes a plan.
	Runner struct {
		logger         *log.Logger
		installer      PackageInstaller
		source         InstallerSource
		native         runtime.Runtime
		virtual        runtime.Runtime
		defaultRuntime planfile.RuntimeMode
		dryRun         bool
		stdout         io.Writer
		stderr         io.Writer
	}

	// Option configures a Runner.
	Option func(*Runner)
)

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithPackageInstaller sets the package manager for packages steps.
func WithPackageInstaller(p PackageInstaller) Option {
	return func(r *Runner) { r.installer = p }
}

// WithInstallerSource sets the fetcher for installer steps.
func WithInstallerSource(s InstallerSource) Option {
	return func(r *Runner) { r.source = s }
}

// WithNativeRuntime overrides the native script runtime.
func WithNativeRuntime(rt runtime.Runtime) Option {
	return func(r *Runner) { r.native = rt }
}

// WithVirtualRuntime overrides the embedded script runtime.
func WithVirtualRuntime(rt runtime.Runtime) Option {
	return func(r *Runner) { r.virtual = rt }
}

// WithDefaultRuntime sets the runtime for script steps that do not pick
// one.
func WithDefaultRuntime(mode planfile.RuntimeMode) Option {
	return func(r *Runner) { r.defaultRuntime = mode }
}

// WithDryRun makes Run report what would execute without touching the
// host.
func WithDryRun(dry bool) Option {
	return func(r *Runner) { r.dryRun = dry }
}

// WithIO wires step stdout and stderr.
func WithIO(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger:         log.New(io.Discard),
		native:         runtime.NewNativeRuntime(),
		virtual:        runtime.NewVirtualRuntime(),
		defaultRuntime: planfile.RuntimeNative,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the plan's steps in order. The returned report is always
// populated, including on failure. A non-nil error is a *StepFailedError
// when a must-succeed step failed.
func (r *Runner) Run(ctx context.Context, plan *planfile.Plan) (*report.Report, error) {
	rep := report.New(plan.Name, plan.FilePath)
	rep.DryRun = r.dryRun

	var halted *StepFailedError
	for i := range plan.Steps {
		step := &plan.Steps[i]

		if halted != nil {
			r.logger.Warn("skipping step after earlier failure", "step", step.Name)
			rep.Steps = append(rep.Steps, skippedResult(step))
			continue
		}

		stepResult, stepErr := r.runStep(ctx, step)
		rep.Steps = append(rep.Steps, stepResult)
		result := &rep.Steps[len(rep.Steps)-1]

		if result.Status == string(StatusFailed) && step.MustSucceed {
			halted = &StepFailedError{
				Step:     step.Name,
				ExitCode: runtime.ExitCode(result.ExitCode),
				Cause:    stepErr,
			}
			r.logger.Error("halting run", "step", step.Name, "exit_code", result.ExitCode)
		}
	}

	if halted != nil {
		rep.Finish(int(halted.ExitCode))
		return rep, halted
	}
	rep.Finish(0)
	return rep, nil
}

// runStep executes one step and returns its report entry. The error is
// the step's infrastructure failure, if any, so the halting error can
// expose the reason and not just the exit code.
func (r *Runner) runStep(ctx context.Context, step *planfile.Step) (report.StepResult, error) {
	res := report.StepResult{
		Name: step.Name,
		Kind: string(step.Kind),
	}

	if r.dryRun {
		r.logger.Info("would run step", "step", step.Name, "kind", step.Kind)
		res.Status = string(StatusSkipped)
		return res, nil
	}

	r.logger.Info("running step", "step", step.Name, "kind", step.Kind)
	start := time.Now()

	outcome := r.execute(ctx, step)
	res.Duration = time.Since(start)
	res.ExitCode = int(outcome.ExitCode)

	switch {
	case !outcome.Failed():
		res.Status = string(StatusDone)
		r.logger.Info("step done", "step", step.Name, "duration", res.Duration)
	default:
		res.Status = string(StatusFailed)
		if outcome.Error != nil {
			res.Err = outcome.Error.Error()
		}
		level := r.logger.Error
		if !step.MustSucceed {
			level = r.logger.Warn
		}
		level("step failed", "step", step.Name, "exit_code", res.ExitCode, "err", res.Err)
	}

	return res, outcome.Error
}

func (r *Runner) execute(ctx context.Context, step *planfile.Step) *runtime.Result {
	switch step.Kind {
	case planfile.KindPackages:
		return r.executePackages(ctx, step)
	case planfile.KindInstaller:
		return r.executeInstaller(ctx, step)
	case planfile.KindScript:
		return r.executeScript(ctx, step)
	}
	return runtime.NewErrorResult(1, &planfile.StepError{
		Step:   step.Name,
		Reason: "unknown step kind " + string(step.Kind),
	})
}

func (r *Runner) executePackages(ctx context.Context, step *planfile.Step) *runtime.Result {
	if r.installer == nil || !r.installer.Available() {
		return runtime.NewErrorResult(1, &planfile.StepError{
			Step:   step.Name,
			Reason: "no usable package manager on this host",
		})
	}
	return r.installer.InstallPackages(ctx, step.Packages)
}

func (r *Runner) executeInstaller(ctx context.Context, step *planfile.Step) *runtime.Result {
	if r.source == nil {
		return runtime.NewErrorResult(1, &planfile.StepError{
			Step:   step.Name,
			Reason: "no installer source configured",
		})
	}

	if step.SHA256 == "" {
		r.logger.Warn("installer step has no sha256 pin; remote content runs unverified",
			"step", step.Name, "url", step.URL)
	}

	body, err := r.source.Script(ctx, step.URL, step.SHA256)
	if err != nil {
		return runtime.NewErrorResult(1, issue.WrapWithOperation(err, "fetch installer"))
	}

	return r.runScript(r.native, &runtime.ExecutionContext{
		Context:     ctx,
		Script:      string(body),
		Interpreter: step.InterpreterOrDefault(),
		RunAs:       step.RunAs,
		Env:         step.Env,
		Stdout:      r.stdout,
		Stderr:      r.stderr,
	})
}

func (r *Runner) executeScript(ctx context.Context, step *planfile.Step) *runtime.Result {
	rt := r.native
	if step.RuntimeOrDefault(r.defaultRuntime) == planfile.RuntimeVirtual {
		rt = r.virtual
	}

	return r.runScript(rt, &runtime.ExecutionContext{
		Context: ctx,
		Script:  step.Script,
		RunAs:   step.RunAs,
		Env:     step.Env,
		Stdout:  r.stdout,
		Stderr:  r.stderr,
	})
}

func (r *Runner) runScript(rt runtime.Runtime, ectx *runtime.ExecutionContext) *runtime.Result {
	if err := rt.Validate(ectx); err != nil {
		return runtime.NewErrorResult(1, err)
	}
	return rt.Execute(ectx)
}

func skippedResult(step *planfile.Step) report.StepResult {
	return report.StepResult{
		Name:   step.Name,
		Kind:   string(step.Kind),
		Status: string(StatusSkipped),
	}
}
