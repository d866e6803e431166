package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/stackbrew/domain"
)

const (
	tempDirPattern = "stackbrew-*"
	remoteName     = "origin"
	branchPrefix   = "refs/heads/"
)

var errForeignHandle = errors.New("repository handle was not produced by this source")

// Handle is the on-disk clone maintained for one source URL.
type Handle struct {
	url  string
	dir  string
	repo *git.Repository
}

func (h *Handle) URL() string         { return h.url }
func (h *Handle) WorkingTree() string { return h.dir }

// Source implements domain.RepositorySource over go-git: full clones into
// fresh temporary directories and in-place checkouts by resolved revision.
type Source struct{}

// New creates a new git-backed source.
func New() *Source {
	return &Source{}
}

// Fetch clones url into a fresh temporary directory.
func (s *Source) Fetch(ctx context.Context, url string) (domain.RepositoryHandle, error) {
	dir, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}

	logger.Infof("Cloning %s", url)

	//nolint:exhaustruct // Minimal CloneOptions initialization with required fields only
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTransport, url, err)
	}
	return &Handle{url: url, dir: dir, repo: repo}, nil
}

// Checkout switches handle's working tree to revision in place and returns
// the working tree path.
func (s *Source) Checkout(
	_ context.Context,
	handle domain.RepositoryHandle,
	revision string,
) (string, error) {
	h, ok := handle.(*Handle)
	if !ok {
		return "", errForeignHandle
	}

	hash, err := h.resolve(revision)
	if err != nil {
		return "", fmt.Errorf("%w: %s in %s", domain.ErrRevisionNotFound, revision, h.url)
	}

	worktree, err := h.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open working tree of %s: %w", h.url, err)
	}
	//nolint:exhaustruct // Minimal CheckoutOptions initialization with required fields only
	if checkoutErr := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); checkoutErr != nil {
		return "", fmt.Errorf("failed to check out %s: %w", revision, checkoutErr)
	}

	logger.Debugf("Checked out %s at %s", h.url, revision)
	return h.dir, nil
}

// resolve maps a fully qualified revision to a commit hash. After a fresh
// clone only the default branch has a local ref, so refs/heads/* falls back
// to the matching remote-tracking ref.
func (h *Handle) resolve(revision string) (*plumbing.Hash, error) {
	hash, err := h.repo.ResolveRevision(plumbing.Revision(revision))
	if err == nil {
		return hash, nil
	}

	if strings.HasPrefix(revision, branchPrefix) {
		name := strings.TrimPrefix(revision, branchPrefix)
		remote := plumbing.NewRemoteReferenceName(remoteName, name)
		if remoteHash, remoteErr := h.repo.ResolveRevision(plumbing.Revision(remote)); remoteErr == nil {
			return remoteHash, nil
		}
	}
	return nil, err
}
