package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/dig"

	"github.com/rios0rios0/stackbrew/application"
	"github.com/rios0rios0/stackbrew/cmd"
	"github.com/rios0rios0/stackbrew/infrastructure"
)

func injectRootCommand() *cobra.Command {
	container := dig.New()

	// Register all layers (bottom-up: infrastructure adapters -> application service -> CLI)
	if err := infrastructure.RegisterProviders(container); err != nil {
		panic(err)
	}
	if err := application.RegisterProviders(container); err != nil {
		panic(err)
	}
	if err := cmd.RegisterProviders(container); err != nil {
		panic(err)
	}

	var root *cobra.Command
	if err := container.Invoke(func(rootCommand *cobra.Command) {
		root = rootCommand
	}); err != nil {
		panic(err)
	}

	return root
}
