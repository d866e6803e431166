package domain

import "context"

// ImageEngine abstracts the container image engine (build, tag, push, pull).
// Artifact IDs are opaque strings owned by the engine.
type ImageEngine interface {
	// Ping verifies the engine is reachable. A failing ping aborts the whole
	// run before any entry is processed.
	Ping(ctx context.Context) error

	// Build builds an image from the working tree at path and returns the
	// resulting artifact ID. Build errors wrap ErrBuildFailed.
	Build(ctx context.Context, path string) (string, error)

	// Tag assigns name:tag to an existing artifact.
	Tag(ctx context.Context, artifactID, name, tag string) error

	// Push uploads every tag of the named image to its registry.
	Push(ctx context.Context, name string) error

	// Pull fetches a public image, used only to warm the layer cache before a
	// build. Callers treat its errors as advisory.
	Pull(ctx context.Context, name string) error
}
