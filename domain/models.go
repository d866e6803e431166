package domain

// BuildKey is the identity under which a build is deduplicated: two manifest
// entries with the same source URL and resolved revision share one artifact.
type BuildKey struct {
	SourceURL string
	Revision  string
}

// BuildResult is the outcome of a successful per-entry pipeline run.
type BuildResult struct {
	ArtifactID string
}

// Image naming defaults applied when a manifest entry leaves them out.
const (
	DefaultNamespace = "library"
	DefaultTag       = "latest"
)
