package application

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/stackbrew/domain"
)

// RepositoryCache deduplicates work within one run: at most one fetch per
// source URL, reused across revisions via in-place checkout, and at most one
// build per (URL, revision) pair. A cache lives for exactly one run and is
// not safe for concurrent use; entries are processed sequentially.
type RepositoryCache struct {
	source    domain.RepositorySource
	handles   map[string]domain.RepositoryHandle
	order     []string
	artifacts map[domain.BuildKey]domain.BuildResult
}

// NewRepositoryCache creates an empty cache over the given source.
func NewRepositoryCache(source domain.RepositorySource) *RepositoryCache {
	return &RepositoryCache{
		source:    source,
		handles:   make(map[string]domain.RepositoryHandle),
		artifacts: make(map[domain.BuildKey]domain.BuildResult),
	}
}

// FetchOrReuse returns a working tree checked out at key's revision. The
// first request for a URL clones it; later requests reuse that clone and only
// switch revisions. A failed fetch is not remembered, so a later entry naming
// the same URL gets a fresh attempt.
func (c *RepositoryCache) FetchOrReuse(ctx context.Context, key domain.BuildKey) (string, error) {
	handle, ok := c.handles[key.SourceURL]
	if ok {
		logger.Debugf("Reusing clone of %s", key.SourceURL)
	} else {
		var err error
		handle, err = c.source.Fetch(ctx, key.SourceURL)
		if err != nil {
			return "", err
		}
		c.handles[key.SourceURL] = handle
		c.order = append(c.order, key.SourceURL)
	}
	return c.source.Checkout(ctx, handle, key.Revision)
}

// LookupArtifact returns the artifact previously recorded under key.
func (c *RepositoryCache) LookupArtifact(key domain.BuildKey) (domain.BuildResult, bool) {
	result, ok := c.artifacts[key]
	return result, ok
}

// RecordArtifact remembers a successful build so later entries with the same
// key reuse its artifact instead of building again.
func (c *RepositoryCache) RecordArtifact(key domain.BuildKey, result domain.BuildResult) {
	c.artifacts[key] = result
}

// Cleanup removes every working tree fetched during the run and resets the
// cache. Removal errors are logged and do not stop the sweep.
func (c *RepositoryCache) Cleanup() {
	for _, url := range c.order {
		workingTree := c.handles[url].WorkingTree()
		if err := os.RemoveAll(workingTree); err != nil {
			logger.Errorf("Failed to remove working tree %s: %v", workingTree, err)
		}
	}
	c.handles = make(map[string]domain.RepositoryHandle)
	c.order = nil
	c.artifacts = make(map[domain.BuildKey]domain.BuildResult)
}
