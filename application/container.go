package application

import (
	"go.uber.org/dig"
)

// RegisterProviders registers the application services with the DIG container.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(NewBuildService)
}
