// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"hostprep/pkg/planfile"

	"github.com/spf13/cobra"
)

// validateCmd checks a plan file without running it
var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Check a plan file without running it",
	Long: `Check a plan file without running it.

The plan is parsed, unified with the schema, and checked for the
constraints the schema cannot express (unique step names, per-kind
field rules). Nothing is executed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := cfg.PlanFile
	if len(args) > 0 {
		path = args[0]
	}

	plan, err := planfile.Parse(path)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("✗")+" "+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s is valid: %d steps\n",
		SuccessStyle.Render("✓"), StepStyle.Render(path), len(plan.Steps))
	return nil
}
