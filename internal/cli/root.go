// Package cli provides the Cobra command structure for sarifapply.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sarifapply/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	workDir    string
}

// NewRootCommand creates the root sarifapply command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}
	flags := &applyFlags{}

	rootCmd := &cobra.Command{
		Use:   "sarifapply [flags] <report.sarif>",
		Short: "Apply the suggested fixes in a SARIF report and commit each one",
		Long: `sarifapply reads a SARIF 2.1.0 report produced by a static analyzer such as
CodeQL, applies every suggested fix to the working tree, and records each
applied fix as its own git commit.

Replacement offsets are counted in Unicode characters by default; use
--offset-unit bytes for tools that emit UTF-8 byte offsets. Fixes that cannot
be applied are logged and reported, and never stop the run.`,
		Example: `  sarifapply results.sarif                  # Apply and commit every fix
  sarifapply --dry-run results.sarif        # Show the diffs without touching files
  sarifapply --rule py/unused-import r.sarif  # Only fixes for one rule
  sarifapply --no-commit --backup r.sarif   # Patch files, keep copies, skip git
  sarifapply --format json r.sarif          # Machine-readable results`,
		Args: func(cmd *cobra.Command, args []string) error {
			return usageError(cobra.ExactArgs(1)(cmd, args))
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if globals.debug {
				level = "debug"
			}
			logging.SetLevel(level)
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], globals, flags, info)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&globals.workDir, "workdir", "",
		"root of the working tree to patch (default: current directory)")

	addApplyFlags(rootCmd, flags)

	// Add subcommands.
	rootCmd.AddCommand(newConfigCommand(globals))
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(globals.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
