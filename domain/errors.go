package domain

import "errors"

// Run-fatal errors: these abort the whole session before any entry is
// processed. Everything else is recorded per entry and processing continues.
var (
	ErrEngineUnreachable = errors.New("build engine is not reachable")
	ErrLibraryNotFound   = errors.New("library directory not found")
)

// Entry-level errors surfaced by the collaborators and the resolver. They are
// wrapped with context at the point of failure and matched with errors.Is.
var (
	ErrRevisionSpec        = errors.New("unrecognized revision spec")
	ErrRevisionNotFound    = errors.New("revision not found")
	ErrTransport           = errors.New("repository could not be fetched")
	ErrDockerfileMissing   = errors.New("Dockerfile not found in working tree")
	ErrBuildFailed         = errors.New("image build failed")
	ErrRegistryUnreachable = errors.New("registry is not reachable")
	ErrPushRejected        = errors.New("push rejected by registry")
)
