package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sarifapply/internal/configloader"
)

func newConfigCommand(globals *globalFlags) *cobra.Command {
	var output string
	var showEnv bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration sarifapply would run with, after merging the user
config, the project config (or --config), and SARIFAPPLY_* environment
variables. The files that were loaded are listed on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showEnv {
				return printEnvVars(cmd)
			}
			return runConfig(cmd, globals, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or toml")
	cmd.Flags().BoolVar(&showEnv, "env", false, "list the supported environment variables")

	return cmd
}

func runConfig(cmd *cobra.Command, globals *globalFlags, output string) error {
	workDir, err := resolveWorkDir(globals.workDir)
	if err != nil {
		return usageError(err)
	}

	result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.configPath,
	})
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: fmt.Errorf("load configuration: %w", err)}
	}

	var data []byte
	switch output {
	case "yaml", "yml":
		data, err = result.Config.ToYAML()
	case "toml":
		data, err = result.Config.ToTOML()
	default:
		return usageError(fmt.Errorf("unknown output format %q; valid formats: yaml, toml", output))
	}
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	for _, path := range result.LoadedFrom {
		cmd.PrintErrln("# loaded", path)
	}
	for _, warning := range result.Warnings {
		cmd.PrintErrln("# warning:", warning)
	}

	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

func printEnvVars(cmd *cobra.Command) error {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	for _, name := range names {
		if _, err := fmt.Fprintf(out, "%-28s %s\n", name, vars[name]); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return nil
}
