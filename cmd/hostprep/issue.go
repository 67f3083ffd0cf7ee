// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"hostprep/internal/issue"

	"github.com/spf13/cobra"
)

// issueCmd shows help for known recurring failure modes
var issueCmd = &cobra.Command{
	Use:   "issue [id]",
	Short: "Show help for a known issue",
	Long: `Show help for a known issue.

Without an argument, lists all known issues. Error messages reference
these by number.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIssue,
}

func runIssue(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render("Known issues"))
		for _, k := range issue.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", k.ID(), k.Title())
		}
		return nil
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid issue id %q", args[0])
	}

	known := issue.Lookup(issue.Id(id))
	if known == nil {
		return fmt.Errorf("unknown issue %d", id)
	}

	fmt.Fprintln(cmd.OutOrStdout(), known.Render())
	return nil
}
