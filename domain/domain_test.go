package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/stackbrew/domain"
	testdoubles "github.com/rios0rios0/stackbrew/test"
)

func TestInterfaceCompliance(t *testing.T) {
	t.Parallel()

	t.Run("should satisfy RepositorySource interface with a dummy", func(t *testing.T) {
		t.Parallel()

		// given
		var source domain.RepositorySource = &testdoubles.DummySource{}

		// then
		assert.NotNil(t, source)
		assert.Implements(t, (*domain.RepositorySource)(nil), source)
	})

	t.Run("should satisfy ImageEngine interface with a dummy", func(t *testing.T) {
		t.Parallel()

		// given
		var engine domain.ImageEngine = &testdoubles.DummyEngine{}

		// then
		assert.NotNil(t, engine)
		assert.Implements(t, (*domain.ImageEngine)(nil), engine)
	})

	t.Run("should satisfy RepositoryHandle interface with a fake", func(t *testing.T) {
		t.Parallel()

		// given
		var handle domain.RepositoryHandle = &testdoubles.FakeHandle{
			RepoURL: "https://example.com/app.git",
			Dir:     "/tmp/app",
		}

		// then
		assert.Equal(t, "https://example.com/app.git", handle.URL())
		assert.Equal(t, "/tmp/app", handle.WorkingTree())
	})
}

func TestModels(t *testing.T) {
	t.Parallel()

	t.Run("should deduplicate builds on URL and revision", func(t *testing.T) {
		t.Parallel()

		// given
		first := domain.BuildKey{
			SourceURL: "https://example.com/app.git",
			Revision:  "refs/heads/master",
		}
		second := domain.BuildKey{
			SourceURL: "https://example.com/app.git",
			Revision:  "refs/heads/master",
		}
		other := domain.BuildKey{
			SourceURL: "https://example.com/app.git",
			Revision:  "refs/tags/v1.0.0",
		}

		// then
		assert.Equal(t, first, second)
		assert.NotEqual(t, first, other)
	})

	t.Run("should expose image naming defaults", func(t *testing.T) {
		t.Parallel()

		// then
		assert.Equal(t, "library", domain.DefaultNamespace)
		assert.Equal(t, "latest", domain.DefaultTag)
		assert.Equal(t, "refs/heads/master", domain.DefaultRevision)
	})

	t.Run("should carry the artifact ID in a build result", func(t *testing.T) {
		t.Parallel()

		// given / when
		result := domain.BuildResult{ArtifactID: "sha256:abc123"}

		// then
		assert.Equal(t, "sha256:abc123", result.ArtifactID)
	})
}
