// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"hostprep/pkg/planfile"

	"github.com/spf13/cobra"
)

var (
	initForce bool

	// initCmd creates a new plan file
	initCmd = &cobra.Command{
		Use:   "init [plan-file]",
		Short: "Create a starter plan in the current directory",
		Long: `Create a starter plan in the current directory.

The generated plan bootstraps a Rust/FUSE build environment: the build
packages from the distribution archive and the rustup installer run as
an unprivileged account. Edit it to fit your host.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing plan")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := planfile.DefaultFileName
	if len(args) > 0 {
		filename = args[0]
	}

	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	if err := os.WriteFile(filename, []byte(planfile.StarterPlan), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(cmd.OutOrStdout(), "  1. Edit the plan to fit your host")
	fmt.Fprintln(cmd.OutOrStdout(), "  2. Run 'hostprep validate' to check it")
	fmt.Fprintln(cmd.OutOrStdout(), "  3. Run 'hostprep apply' to provision the host")

	return nil
}
