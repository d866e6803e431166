package cmd

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/stackbrew/application"
	"github.com/rios0rios0/stackbrew/config"
)

func newBuildCommand(service *application.BuildService) *cobra.Command {
	var (
		configPath string
		branch     string
		namespace  string
		registry   string
		push       bool
		prefill    bool
		verbose    bool
	)

	//nolint:exhaustruct // Minimal Command initialization with required fields only
	command := &cobra.Command{
		Use:   "build [source]",
		Short: "Build every image described by the manifest library",
		Long: `Fetch the manifest source, parse every file under library/ and build
one image per entry, skipping nothing on individual failures.

The optional [source] argument overrides the configured manifest
repository; it may be a git URL or a local directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			opts := application.BuildOptions{
				Source:    cfg.Repository,
				Branch:    cfg.Branch,
				Namespace: cfg.Namespace,
				Registry:  cfg.Registry,
				Push:      cfg.Push,
				Prefill:   cfg.Prefill,
				Verbose:   verbose,
			}
			if len(args) == 1 {
				opts.Source = args[0]
			}

			// Explicit flags win over the config file
			flags := command.Flags()
			if flags.Changed("branch") {
				opts.Branch = branch
			}
			if flags.Changed("namespace") {
				opts.Namespace = namespace
			}
			if flags.Changed("registry") {
				opts.Registry = registry
			}
			if flags.Changed("push") {
				opts.Push = push
			}
			if flags.Changed("prefill") {
				opts.Prefill = prefill
			}

			report, err := service.Run(context.Background(), opts)
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
	command.Flags().StringVarP(&namespace, "namespace", "n", "",
		"Image name prefix (default: library)")
	command.Flags().StringVar(&registry, "registry", "",
		"Registry host images are retagged with before pushing")
	command.Flags().BoolVar(&push, "push", false,
		"Push images after building")
	command.Flags().BoolVar(&prefill, "prefill", true,
		"Pull public images first to warm the layer cache")
	command.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	return command
}

// loadConfig loads the explicit config file when given, an auto-detected one
// when present, and the stock defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		detected, err := config.FindConfigFile()
		if err != nil {
			return config.Default(), nil
		}
		path = detected
	}

	logger.Infof("Using config file: %s", path)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
