package infrastructure

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/stackbrew/domain"
	"github.com/rios0rios0/stackbrew/infrastructure/engine/docker"
	"github.com/rios0rios0/stackbrew/infrastructure/source/gitrepo"
)

// RegisterProviders registers all infrastructure adapters with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register the git-backed repository source
	if err := container.Provide(func() domain.RepositorySource {
		return gitrepo.New()
	}); err != nil {
		return err
	}

	// Register the Docker engine adapter
	if err := container.Provide(func() (domain.ImageEngine, error) {
		return docker.New()
	}); err != nil {
		return err
	}

	return nil
}
