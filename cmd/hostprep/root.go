// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for hostprep.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"hostprep/internal/config"
	"hostprep/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the effective configuration, loaded by initRootConfig.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "hostprep",
		Short: "A fail-fast host provisioning runner",
		Long: TitleStyle.Render("hostprep") + SubtitleStyle.Render(" - A fail-fast host provisioning runner") + `

hostprep turns fragile bootstrap shell scripts into declarative plans.
A plan is an ordered list of steps: OS package installation, remote
installer scripts fetched over TLS and piped into a shell (optionally
as an unprivileged account), and inline scripts.

Steps run strictly in order and the run halts on the first failure of
a must-succeed step, propagating that step's exit code.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'hostprep init' to create a starter plan
  2. Review and edit hostprep.cue
  3. Apply it with: hostprep apply

` + SubtitleStyle.Render("Examples:") + `
  hostprep apply            Run the plan in the working directory
  hostprep apply --dry-run  Show what would run without touching the host
  hostprep steps            List plan steps and their last outcome
  hostprep validate         Check a plan without running it
  hostprep config show      Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/hostprep/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(issueCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFileOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Surface config errors but keep going on defaults; apply still
		// works without a config file.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}
	cfg = loaded
}

// formatErrorForDisplay formats an error for user display. ActionableError
// values render their suggestions; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
