package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/stackbrew/application"
)

// NewRootCommand builds the stackbrew CLI on top of the build service.
func NewRootCommand(service *application.BuildService) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	root := &cobra.Command{
		Use:   "stackbrew",
		Short: "Build-manifest orchestration engine for container image libraries",
		Long: `stackbrew reads a library of declarative build manifests, fetches the
git revision each entry pins, builds the corresponding container images
and optionally pushes them to a registry.

Each file under library/ describes one image: every line maps a tag to
a git URL plus an optional branch (B:), tag (T:) or commit (C:) spec.

Usage modes:
  stackbrew build              Build from the configured manifest source
  stackbrew build ./checkout   Build from a local manifest checkout
  stackbrew lint               Check manifests without touching the engine`,
	}

	root.AddCommand(newBuildCommand(service))
	root.AddCommand(newLintCommand(service))

	return root
}
