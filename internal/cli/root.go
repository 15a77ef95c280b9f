package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/kolah/scribe/internal/cli.Version=...".
var Version = "dev"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scribe",
		Short:         "Scribe - Markdown reference pages from OpenAPI documents",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	flags.String("log-format", "console", "Log format: console, json")

	root.AddCommand(BuildCommand(), VersionCommand())

	return root
}

func VersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the scribe version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
