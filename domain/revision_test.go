package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/stackbrew/domain"
)

func TestResolveRevision(t *testing.T) {
	t.Parallel()

	t.Run("should default to master when the spec is empty", func(t *testing.T) {
		t.Parallel()

		// when
		revision, err := domain.ResolveRevision("")

		// then
		require.NoError(t, err)
		assert.Equal(t, "refs/heads/master", revision)
	})

	t.Run("should expand branch shorthand to a heads ref", func(t *testing.T) {
		t.Parallel()

		// when
		revision, err := domain.ResolveRevision("B:dev")

		// then
		require.NoError(t, err)
		assert.Equal(t, "refs/heads/dev", revision)
	})

	t.Run("should expand tag shorthand to a tags ref", func(t *testing.T) {
		t.Parallel()

		// when
		revision, err := domain.ResolveRevision("T:v1.0.0")

		// then
		require.NoError(t, err)
		assert.Equal(t, "refs/tags/v1.0.0", revision)
	})

	t.Run("should pass a commit hash through unchanged", func(t *testing.T) {
		t.Parallel()

		// when
		revision, err := domain.ResolveRevision("C:5c6c8d52fa5cf7fc063b9e8fcbb1f93c521cc4e5")

		// then
		require.NoError(t, err)
		assert.Equal(t, "5c6c8d52fa5cf7fc063b9e8fcbb1f93c521cc4e5", revision)
	})

	t.Run("should keep branch names containing slashes intact", func(t *testing.T) {
		t.Parallel()

		// when
		revision, err := domain.ResolveRevision("B:feature/login")

		// then
		require.NoError(t, err)
		assert.Equal(t, "refs/heads/feature/login", revision)
	})

	t.Run("should reject an unrecognized prefix", func(t *testing.T) {
		t.Parallel()

		// when
		revision, err := domain.ResolveRevision("X:whatever")

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrRevisionSpec)
		assert.Contains(t, err.Error(), "X:whatever")
		assert.Empty(t, revision)
	})

	t.Run("should reject a lowercase prefix", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := domain.ResolveRevision("b:dev")

		// then
		assert.ErrorIs(t, err, domain.ErrRevisionSpec)
	})
}
