package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/sarifapply/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of sarifapply.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
			logger.SetLevel(log.InfoLevel)

			logger.Info("sarifapply",
				logging.FieldVersion, info.Version,
				logging.FieldSHA, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}

	return cmd
}
