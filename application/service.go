package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/stackbrew/domain"
	"github.com/rios0rios0/stackbrew/manifest"
)

// BuildService orchestrates a whole run:
// resolve manifest source -> enumerate the library -> process every entry ->
// clean up every working directory.
type BuildService struct {
	source domain.RepositorySource
	engine domain.ImageEngine
}

// NewBuildService creates a new service over the given collaborators.
func NewBuildService(source domain.RepositorySource, engine domain.ImageEngine) *BuildService {
	return &BuildService{source: source, engine: engine}
}

// BuildOptions holds runtime options for a single run.
type BuildOptions struct {
	Source    string // manifest library: URL or local path
	Branch    string // library branch when Source is remote
	Namespace string
	Registry  string
	Push      bool
	Prefill   bool
	Verbose   bool
}

// LintOptions holds runtime options for a lint pass.
type LintOptions struct {
	Source  string
	Branch  string
	Verbose bool
}

// Run executes the full build cycle and returns the per-entry report. Only
// run-level problems (unreachable engine, unfetchable manifest source,
// missing library directory) are returned as errors; everything that goes
// wrong for a single entry is recorded in the report and processing moves on.
func (s *BuildService) Run(ctx context.Context, opts BuildOptions) (*domain.Report, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if err := s.engine.Ping(ctx); err != nil {
		return nil, err
	}

	root, cleanupSource, err := s.resolveManifestSource(ctx, opts.Source, opts.Branch)
	if err != nil {
		return nil, err
	}
	defer cleanupSource()

	libraryPath := filepath.Join(root, manifest.LibraryDir)
	files, err := os.ReadDir(libraryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrLibraryNotFound, libraryPath)
	}

	cache := NewRepositoryCache(s.source)
	defer cache.Cleanup()
	orchestrator := NewBuildOrchestrator(cache, s.engine)

	report := domain.NewReport()
	for _, file := range files {
		if file.IsDir() || file.Name() == manifest.MaintainersFile {
			continue
		}
		s.processFile(ctx, orchestrator, report, libraryPath, file.Name(), opts)
	}

	logger.Infof(
		"Run complete: %d entries processed, %d failures",
		report.Len(), report.FailureCount(),
	)
	return report, nil
}

// processFile parses one manifest file and drives every entry through the
// orchestrator. The file's base name is the image's bare name.
func (s *BuildService) processFile(
	ctx context.Context,
	orchestrator *BuildOrchestrator,
	report *domain.Report,
	libraryPath, image string,
	opts BuildOptions,
) {
	logger.Infof("Processing manifest: %s", image)

	content, err := os.ReadFile(filepath.Join(libraryPath, image))
	if err != nil {
		logger.Errorf("Failed to read manifest %s: %v", image, err)
		report.AddFailure(image, 0, "", err)
		return
	}

	for _, line := range manifest.Parse(string(content)) {
		if line.Err != nil {
			logger.Errorf("[%s:%d] %v", image, line.Number, line.Err)
			report.AddFailure(image, line.Number, line.Raw, line.Err)
			continue
		}

		// Layer-cache warmer; failures are advisory and never reported.
		if opts.Prefill {
			if pullErr := s.engine.Pull(ctx, image); pullErr != nil {
				logger.Debugf("Prefill pull of %s failed: %v", image, pullErr)
			}
		}

		result, processErr := orchestrator.Process(ctx, image, line.Entry, ProcessOptions{
			Namespace: opts.Namespace,
			Registry:  opts.Registry,
			Push:      opts.Push,
		})
		if processErr != nil {
			logger.Errorf("[%s:%d] %v", image, line.Number, processErr)
			report.AddFailure(image, line.Number, line.Raw, processErr)
			continue
		}
		report.AddSuccess(image, line.Number, line.Raw, result.ArtifactID)
	}
}

// Lint validates every manifest without fetching entry sources or building
// images: line syntax plus revision-spec shorthand. Successful entries report
// their resolved revision.
func (s *BuildService) Lint(ctx context.Context, opts LintOptions) (*domain.Report, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	root, cleanupSource, err := s.resolveManifestSource(ctx, opts.Source, opts.Branch)
	if err != nil {
		return nil, err
	}
	defer cleanupSource()

	libraryPath := filepath.Join(root, manifest.LibraryDir)
	files, err := os.ReadDir(libraryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrLibraryNotFound, libraryPath)
	}

	report := domain.NewReport()
	for _, file := range files {
		if file.IsDir() || file.Name() == manifest.MaintainersFile {
			continue
		}

		content, readErr := os.ReadFile(filepath.Join(libraryPath, file.Name()))
		if readErr != nil {
			report.AddFailure(file.Name(), 0, "", readErr)
			continue
		}

		for _, line := range manifest.Parse(string(content)) {
			if line.Err != nil {
				report.AddFailure(file.Name(), line.Number, line.Raw, line.Err)
				continue
			}
			revision, resolveErr := domain.ResolveRevision(line.Entry.RevisionSpec)
			if resolveErr != nil {
				report.AddFailure(file.Name(), line.Number, line.Raw, resolveErr)
				continue
			}
			report.AddSuccess(file.Name(), line.Number, line.Raw, revision)
		}
	}
	return report, nil
}

// resolveManifestSource returns the local root of the manifest tree and a
// cleanup func for any temporary clone made along the way. Local paths are
// used in place and never removed.
func (s *BuildService) resolveManifestSource(
	ctx context.Context,
	source, branch string,
) (string, func(), error) {
	if !isRemote(source) {
		return source, func() {}, nil
	}

	logger.Infof("Fetching manifest library %s", source)

	handle, err := s.source.Fetch(ctx, source)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch manifest source %s: %w", source, err)
	}
	cleanup := func() {
		if removeErr := os.RemoveAll(handle.WorkingTree()); removeErr != nil {
			logger.Errorf("Failed to remove manifest clone %s: %v", handle.WorkingTree(), removeErr)
		}
	}

	if branch != "" {
		if _, checkoutErr := s.source.Checkout(ctx, handle, "refs/heads/"+branch); checkoutErr != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to check out manifest branch %s: %w", branch, checkoutErr)
		}
	}
	return handle.WorkingTree(), cleanup, nil
}

// isRemote reports whether the manifest source needs a fetch rather than a
// local read.
func isRemote(source string) bool {
	return strings.Contains(source, "://") || strings.HasPrefix(source, "git@")
}
