package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/stackbrew/domain"
)

func TestReport(t *testing.T) {
	t.Parallel()

	t.Run("should start empty and successful", func(t *testing.T) {
		t.Parallel()

		// given
		report := domain.NewReport()

		// then
		assert.True(t, report.OverallSuccess())
		assert.Zero(t, report.Len())
		assert.Zero(t, report.FailureCount())
		assert.Empty(t, report.Entries())
	})

	t.Run("should record successes and failures in insertion order", func(t *testing.T) {
		t.Parallel()

		// given
		report := domain.NewReport()

		// when
		report.AddSuccess("myapp", 1, "latest https://example.com/app.git", "sha256:aaa")
		report.AddFailure("myapp", 2, "broken https://example.com/app.git X:1", errors.New("unrecognized revision spec"))
		report.AddSuccess("other", 1, "https://example.com/other.git", "sha256:bbb")

		// then
		assert.False(t, report.OverallSuccess())
		assert.Equal(t, 3, report.Len())
		assert.Equal(t, 1, report.FailureCount())

		entries := report.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, "myapp", entries[0].File)
		assert.Equal(t, 1, entries[0].Line)
		assert.False(t, entries[0].Failed)
		assert.Equal(t, "sha256:aaa", entries[0].ArtifactID)
		assert.True(t, entries[1].Failed)
		assert.Equal(t, "unrecognized revision spec", entries[1].Message)
		assert.Equal(t, "other", entries[2].File)
	})

	t.Run("should keep only the last non-empty line of a failure", func(t *testing.T) {
		t.Parallel()

		// given
		report := domain.NewReport()
		err := errors.New("step 1/3 : FROM scratch\nstep 2/3 : COPY . /\nCOPY failed: no source files were specified\n")

		// when
		report.AddFailure("myapp", 4, "raw", err)

		// then
		entries := report.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "COPY failed: no source files were specified", entries[0].Message)
	})

	t.Run("should not let callers mutate internal state through Entries", func(t *testing.T) {
		t.Parallel()

		// given
		report := domain.NewReport()
		report.AddSuccess("myapp", 1, "raw", "sha256:aaa")

		// when
		entries := report.Entries()
		entries[0].ArtifactID = "tampered"

		// then
		assert.Equal(t, "sha256:aaa", report.Entries()[0].ArtifactID)
	})
}

func TestReportRender(t *testing.T) {
	t.Parallel()

	t.Run("should group rendered lines by manifest file", func(t *testing.T) {
		t.Parallel()

		// given
		report := domain.NewReport()
		report.AddSuccess("myapp", 1, "raw", "sha256:aaa")
		report.AddFailure("myapp", 2, "raw", errors.New("image build failed"))
		report.AddSuccess("other", 1, "raw", "sha256:bbb")

		// when
		rendered := report.Render()

		// then
		lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
		require.Len(t, lines, 7)
		assert.Equal(t, "Build summary:", lines[0])
		assert.Equal(t, "myapp:", lines[1])
		assert.Contains(t, lines[2], "line 1")
		assert.Contains(t, lines[2], "OK")
		assert.Contains(t, lines[2], "sha256:aaa")
		assert.Contains(t, lines[3], "line 2")
		assert.Contains(t, lines[3], "KO")
		assert.Contains(t, lines[3], "image build failed")
		assert.Equal(t, "other:", lines[4])
		assert.Equal(t, "1 of 3 entries failed", lines[6])
	})

	t.Run("should report totals when everything succeeded", func(t *testing.T) {
		t.Parallel()

		// given
		report := domain.NewReport()
		report.AddSuccess("myapp", 1, "raw", "sha256:aaa")
		report.AddSuccess("myapp", 2, "raw", "sha256:bbb")

		// when
		rendered := report.Render()

		// then
		assert.Contains(t, rendered, "2 entries, all succeeded")
		assert.NotContains(t, rendered, "failed")
	})

	t.Run("should bound every rendered line to 100 columns", func(t *testing.T) {
		t.Parallel()

		// given
		report := domain.NewReport()
		report.AddFailure("myapp", 1, "raw", errors.New(strings.Repeat("x", 300)))

		// when
		rendered := report.Render()

		// then
		for _, line := range strings.Split(rendered, "\n") {
			assert.LessOrEqual(t, len([]rune(line)), 100)
		}
		assert.Contains(t, rendered, "...")
	})

	t.Run("should repeat the file header when the same file is not contiguous", func(t *testing.T) {
		t.Parallel()

		// given
		report := domain.NewReport()
		report.AddSuccess("a", 1, "raw", "sha256:aaa")
		report.AddSuccess("b", 1, "raw", "sha256:bbb")
		report.AddSuccess("a", 2, "raw", "sha256:ccc")

		// when
		rendered := report.Render()

		// then
		assert.Equal(t, 2, strings.Count(rendered, "a:\n"))
	})
}
