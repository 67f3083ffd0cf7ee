// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"hostprep/internal/config"
	"hostprep/internal/fetch"
	"hostprep/internal/issue"
	"hostprep/internal/pkgmgr"
	"hostprep/internal/runner"
	"hostprep/pkg/planfile"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	applyPlan   string
	applyDryRun bool

	// applyCmd runs the plan against this host
	applyCmd = &cobra.Command{
		Use:   "apply",
		Short: "Run the provisioning plan against this host",
		Long: `Run the provisioning plan against this host.

Steps run strictly in order. When a must-succeed step fails the run
stops, later steps are skipped, and hostprep exits with the failing
step's exit code. A run report is written to the state directory.`,
		RunE: runApply,
	}
)

func init() {
	applyCmd.Flags().StringVarP(&applyPlan, "plan", "p", "", "plan file (default is ./"+planfile.DefaultFileName+")")
	applyCmd.Flags().BoolVarP(&applyDryRun, "dry-run", "n", false, "show what would run without touching the host")
}

func runApply(cmd *cobra.Command, _ []string) error {
	plan, err := loadPlan(applyPlan)
	if err != nil {
		return err
	}

	installer, err := resolveInstaller(plan, applyDryRun)
	if err != nil {
		return err
	}

	logger := newRunLogger()
	r := runner.New(
		runner.WithLogger(logger),
		runner.WithPackageInstaller(installer),
		runner.WithInstallerSource(fetch.New(
			fetch.WithMaxResponseBytes(cfg.Fetch.MaxResponseBytes),
			fetch.WithRequireChecksum(cfg.Fetch.RequireChecksum),
			fetch.WithUserAgent("hostprep/"+Version),
		)),
		runner.WithDefaultRuntime(cfg.DefaultRuntime),
		runner.WithDryRun(applyDryRun),
		runner.WithIO(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)

	rep, runErr := r.Run(cmd.Context(), plan)

	if !applyDryRun {
		if dir, dirErr := reportDir(); dirErr == nil {
			if _, writeErr := rep.Write(dir); writeErr != nil {
				logger.Warn("could not persist run report", "err", writeErr)
			}
		}
	}

	if runErr != nil {
		var stepErr *runner.StepFailedError
		if errors.As(runErr, &stepErr) {
			fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("✗")+" "+formatErrorForDisplay(runErr, verbose))
			return &ExitError{Code: stepErr.ExitCode, Err: runErr}
		}
		return runErr
	}

	if applyDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Dry run: %d steps would run\n",
			SuccessStyle.Render("✓"), len(rep.Steps))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Plan %s applied: %d steps\n",
		SuccessStyle.Render("✓"), StepStyle.Render(plan.Name), len(rep.Steps))
	return nil
}

// resolveInstaller detects the host package manager when the plan has a
// packages step, so an unsupported host fails with the actionable
// detection error before any step runs. Plans without packages steps and
// dry runs skip detection.
func resolveInstaller(plan *planfile.Plan, dryRun bool) (pkgmgr.Installer, error) {
	needed := false
	for i := range plan.Steps {
		if plan.Steps[i].Kind == planfile.KindPackages {
			needed = true
			break
		}
	}

	if !needed || dryRun {
		return pkgmgr.NewAptGet(), nil
	}
	return pkgmgr.Detect()
}

// loadPlan resolves and parses the plan: explicit flag first, then the
// configured default.
func loadPlan(flagPath string) (*planfile.Plan, error) {
	path := flagPath
	if path == "" {
		path = cfg.PlanFile
	}

	if _, err := os.Stat(path); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load plan").
			WithResource(path).
			WithSuggestion("Run 'hostprep init' to create a starter plan").
			WithSuggestion("Point at an explicit plan with --plan <path>").
			WithSuggestion(fmt.Sprintf("See 'hostprep issue %d' for details", issue.PlanNotFoundID)).
			Wrap(err).
			BuildError()
	}

	plan, err := planfile.Parse(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse plan").
			WithResource(path).
			WithSuggestion("Run 'hostprep validate' for the full diagnostic").
			Wrap(err).
			BuildError()
	}
	return plan, nil
}

// newRunLogger builds the structured logger for a run from the configured
// level; --verbose forces debug.
func newRunLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	if verbose {
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	if level, err := log.ParseLevel(string(cfg.LogLevel)); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// reportDir returns the directory run reports are written to.
func reportDir() (string, error) {
	if cfg.ReportDir != "" {
		return cfg.ReportDir, nil
	}
	return config.StateDir()
}
