package cmd

import (
	"go.uber.org/dig"
)

// RegisterProviders registers the CLI constructors with the DIG container.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(NewRootCommand)
}
