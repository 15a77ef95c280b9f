package cli

import (
	"fmt"

	"github.com/kolah/scribe/internal/config"
	"github.com/kolah/scribe/internal/site"
	"github.com/spf13/cobra"
)

func BuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate Markdown pages from an OpenAPI document",
		Args:  cobra.NoArgs,
		RunE:  runBuild,
	}

	config.BindFlags(cmd)

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	log, err := loggerFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	builder, err := site.New(cfg, log, site.WithDryRun(dryRun))
	if err != nil {
		return fmt.Errorf("creating builder: %w", err)
	}

	result, err := builder.Build(cmd.Context())
	if err != nil {
		return err
	}

	if dryRun {
		for _, f := range result.Files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
	}

	return nil
}
