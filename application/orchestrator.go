package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/stackbrew/domain"
	"github.com/rios0rios0/stackbrew/manifest"
)

// dockerfileName is the build descriptor every working tree must carry.
const dockerfileName = "Dockerfile"

// ProcessOptions select how a processed entry is named and published.
type ProcessOptions struct {
	Namespace string
	Registry  string
	Push      bool
}

// BuildOrchestrator drives one manifest entry end to end:
// resolve revision -> fetch or reuse the source -> build or reuse the
// artifact -> tag -> optionally push.
type BuildOrchestrator struct {
	cache  *RepositoryCache
	engine domain.ImageEngine
}

// NewBuildOrchestrator creates an orchestrator over the given run cache and engine.
func NewBuildOrchestrator(cache *RepositoryCache, engine domain.ImageEngine) *BuildOrchestrator {
	return &BuildOrchestrator{cache: cache, engine: engine}
}

// Process builds entry into {namespace}/{image}:{tag} and returns the
// artifact behind it. Errors are entry-scoped: the caller records them and
// moves on to the next entry.
func (o *BuildOrchestrator) Process(
	ctx context.Context,
	image string,
	entry manifest.Entry,
	opts ProcessOptions,
) (domain.BuildResult, error) {
	revision, err := domain.ResolveRevision(entry.RevisionSpec)
	if err != nil {
		return domain.BuildResult{}, err
	}

	key := domain.BuildKey{SourceURL: entry.SourceURL, Revision: revision}
	result, ok := o.cache.LookupArtifact(key)
	if ok {
		logger.Debugf("Reusing artifact %s for %s@%s", result.ArtifactID, key.SourceURL, key.Revision)
	} else {
		result, err = o.build(ctx, key)
		if err != nil {
			return domain.BuildResult{}, err
		}
		o.cache.RecordArtifact(key, result)
	}

	name := destinationName(image, opts.Namespace)
	tag := entry.Tag
	if tag == "" {
		tag = domain.DefaultTag
	}
	if tagErr := o.engine.Tag(ctx, result.ArtifactID, name, tag); tagErr != nil {
		return domain.BuildResult{}, tagErr
	}
	logger.Infof("Tagged %s as %s:%s", result.ArtifactID, name, tag)

	if opts.Push {
		pushName := name
		if opts.Registry != "" {
			pushName = opts.Registry + "/" + name
			if tagErr := o.engine.Tag(ctx, result.ArtifactID, pushName, tag); tagErr != nil {
				return domain.BuildResult{}, tagErr
			}
		}
		if pushErr := o.engine.Push(ctx, pushName); pushErr != nil {
			return domain.BuildResult{}, pushErr
		}
		logger.Infof("Pushed %s", pushName)
	}

	return result, nil
}

// build fetches and checks out key's revision, then builds a fresh artifact.
func (o *BuildOrchestrator) build(ctx context.Context, key domain.BuildKey) (domain.BuildResult, error) {
	workingTree, err := o.cache.FetchOrReuse(ctx, key)
	if err != nil {
		return domain.BuildResult{}, err
	}

	if _, statErr := os.Stat(filepath.Join(workingTree, dockerfileName)); statErr != nil {
		return domain.BuildResult{}, fmt.Errorf("%w at %s", domain.ErrDockerfileMissing, key.Revision)
	}

	artifactID, err := o.engine.Build(ctx, workingTree)
	if err != nil {
		return domain.BuildResult{}, err
	}
	logger.Infof("Built %s@%s -> %s", key.SourceURL, key.Revision, artifactID)
	return domain.BuildResult{ArtifactID: artifactID}, nil
}

// destinationName qualifies the image's bare name with a namespace.
func destinationName(image, namespace string) string {
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}
	return namespace + "/" + image
}
