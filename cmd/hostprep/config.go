// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"hostprep/internal/config"

	"github.com/spf13/cobra"
)

var (
	// configCmd groups configuration subcommands
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage hostprep configuration",
	}

	// configShowCmd prints the effective configuration
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration after merging defaults, the config
file, and HOSTPREP_* environment variables.`,
		RunE: runConfigShow,
	}

	// configPathCmd prints the configuration directory
	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Show the configuration directory",
		RunE:  runConfigPath,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, TitleStyle.Render("hostprep configuration"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  plan_file:                %s\n", cfg.PlanFile)
	fmt.Fprintf(out, "  default_runtime:          %s\n", cfg.DefaultRuntime)
	fmt.Fprintf(out, "  log_level:                %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "  fetch.max_response_bytes: %d\n", cfg.Fetch.MaxResponseBytes)
	fmt.Fprintf(out, "  fetch.require_checksum:   %t\n", cfg.Fetch.RequireChecksum)

	dir, err := reportDir()
	if err == nil {
		fmt.Fprintf(out, "  report_dir:               %s\n", dir)
	}

	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}
