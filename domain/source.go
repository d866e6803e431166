package domain

import "context"

// RepositoryHandle is the single on-disk working copy maintained for one
// source URL within a run. Checkouts mutate the working tree in place; the
// owner of the handle is responsible for removing the tree when the run ends.
type RepositoryHandle interface {
	// URL returns the source URL this handle was fetched from.
	URL() string

	// WorkingTree returns the path of the working copy on disk.
	WorkingTree() string
}

// RepositorySource abstracts the version-control transport. Implementations
// own cloning and revision checkout; they never decide build policy.
type RepositorySource interface {
	// Fetch performs a full clone of url into a fresh temporary directory and
	// returns a handle to it. Transport and authentication failures wrap
	// ErrTransport.
	Fetch(ctx context.Context, url string) (RepositoryHandle, error)

	// Checkout switches the handle's working tree to the given fully
	// qualified revision (refs/heads/..., refs/tags/..., or a commit hash)
	// and returns the working tree path. A revision that does not exist in
	// the repository wraps ErrRevisionNotFound.
	Checkout(ctx context.Context, handle RepositoryHandle, revision string) (string, error)
}
