// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"time"

	"hostprep/internal/report"
	"hostprep/internal/runner"

	"github.com/spf13/cobra"
)

var (
	stepsPlan    string
	stepsHistory bool

	// stepsCmd lists plan steps and their last recorded outcome
	stepsCmd = &cobra.Command{
		Use:   "steps",
		Short: "List plan steps and their last outcome",
		RunE:  runSteps,
	}
)

func init() {
	stepsCmd.Flags().StringVarP(&stepsPlan, "plan", "p", "", "plan file (default is the configured plan)")
	stepsCmd.Flags().BoolVar(&stepsHistory, "history", false, "list recorded runs instead of plan steps")
}

func runSteps(cmd *cobra.Command, _ []string) error {
	if stepsHistory {
		return runStepsHistory(cmd)
	}

	plan, err := loadPlan(stepsPlan)
	if err != nil {
		return err
	}

	last := lastOutcomes(plan.Name)

	fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render(plan.Name))
	if plan.Description != "" {
		fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render(plan.Description))
	}
	fmt.Fprintln(cmd.OutOrStdout())

	for i, step := range plan.Steps {
		marker := SubtitleStyle.Render("·")
		detail := ""
		if res, ok := last[step.Name]; ok {
			marker = statusMarker(runner.StepStatus(res.Status))
			if res.Status == string(runner.StatusFailed) {
				detail = SubtitleStyle.Render(fmt.Sprintf(" (exit %d)", res.ExitCode))
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "  %s %d. %s [%s]%s\n",
			marker, i+1, StepStyle.Render(step.Name), step.Kind, detail)
		if step.Description != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "       %s\n", SubtitleStyle.Render(step.Description))
		}
	}

	return nil
}

// runStepsHistory lists every recorded run, oldest first.
func runStepsHistory(cmd *cobra.Command) error {
	dir, err := reportDir()
	if err != nil {
		return err
	}

	paths, err := report.List(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("No runs recorded yet"))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render("Run history"))
	for _, path := range paths {
		rep, err := report.Load(path)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", WarningStyle.Render("?"), path)
			continue
		}

		marker := SuccessStyle.Render("✓")
		if rep.Failed() {
			marker = ErrorStyle.Render("✗")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s  %s  exit %d  (%d steps)\n",
			marker, rep.StartedAt.Format(time.RFC3339), StepStyle.Render(rep.PlanName),
			rep.ExitCode, len(rep.Steps))
	}
	return nil
}

// lastOutcomes indexes the latest report's step results by name. Reports
// from a different plan are ignored.
func lastOutcomes(planName string) map[string]report.StepResult {
	dir, err := reportDir()
	if err != nil {
		return nil
	}

	rep, err := report.LoadLatest(dir)
	if err != nil || rep == nil || rep.PlanName != planName || rep.DryRun {
		return nil
	}

	out := make(map[string]report.StepResult, len(rep.Steps))
	for _, s := range rep.Steps {
		out[s.Name] = s
	}
	return out
}

func statusMarker(status runner.StepStatus) string {
	switch status {
	case runner.StatusDone:
		return SuccessStyle.Render("✓")
	case runner.StatusFailed:
		return ErrorStyle.Render("✗")
	case runner.StatusSkipped:
		return WarningStyle.Render("~")
	}
	return SubtitleStyle.Render("·")
}
