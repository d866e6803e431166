package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/stackbrew/application"
)

func newLintCommand(service *application.BuildService) *cobra.Command {
	var (
		configPath string
		branch     string
		verbose    bool
	)

	//nolint:exhaustruct // Minimal Command initialization with required fields only
	command := &cobra.Command{
		Use:   "lint [source]",
		Short: "Check manifest syntax and revision specs without building",
		Long: `Parse every manifest in the library and resolve each revision
shorthand, reporting malformed entries. The container engine is never
contacted; remote sources are fetched the same way build fetches them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			opts := application.LintOptions{
				Source:  cfg.Repository,
				Branch:  cfg.Branch,
				Verbose: verbose,
			}
			if len(args) == 1 {
				opts.Source = args[0]
			}
			if command.Flags().Changed("branch") {
				opts.Branch = branch
			}

			report, err := service.Lint(context.Background(), opts)
			if err != nil {
				return err
			}

			fmt.Fprint(command.OutOrStdout(), report.Render())
			if !report.OverallSuccess() {
				return fmt.Errorf("%d of %d entries failed", report.FailureCount(), report.Len())
			}
			return nil
		},
	}

	command.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: auto-detect)")
	command.Flags().StringVarP(&branch, "branch", "b", "",
		"Branch checked out on a remote manifest source")
	command.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	return command
}
