// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations, no mock frameworks.
package testdoubles

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rios0rios0/stackbrew/domain"
)

// ---------------------------------------------------------------------------
// FakeHandle
// ---------------------------------------------------------------------------

// FakeHandle implements domain.RepositoryHandle over a plain directory.
type FakeHandle struct {
	RepoURL string
	Dir     string
}

var _ domain.RepositoryHandle = (*FakeHandle)(nil)

func (h *FakeHandle) URL() string { return h.RepoURL }

func (h *FakeHandle) WorkingTree() string { return h.Dir }

// ---------------------------------------------------------------------------
// SpySource
// ---------------------------------------------------------------------------

// SpySource implements domain.RepositorySource as a configurable spy. Fetch
// materializes a real directory under Root so callers can stat files in the
// working tree; by default it contains a single Dockerfile.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpySource struct {
	// Root is the directory working trees are created under. Tests usually
	// pass t.TempDir().
	Root string

	// --- Fetch ---
	FetchErrs map[string]error // url -> error
	// Seed overrides the default tree content for a url: relative path ->
	// file content. Used to serve manifest libraries from a fake remote.
	Seed map[string]map[string]string
	// MissingDockerfile leaves the tree for a url empty.
	MissingDockerfile map[string]bool
	// spy: urls fetched, in order
	FetchedURLs []string

	// --- Checkout ---
	CheckoutErrs map[string]error // revision -> error
	// spy: checkouts performed, in order
	CheckoutCalls []CheckoutCall
}

// CheckoutCall records a single invocation of Checkout.
type CheckoutCall struct {
	URL      string
	Revision string
}

var _ domain.RepositorySource = (*SpySource)(nil)

func (s *SpySource) Fetch(_ context.Context, url string) (domain.RepositoryHandle, error) {
	s.FetchedURLs = append(s.FetchedURLs, url)
	if err := s.FetchErrs[url]; err != nil {
		return nil, err
	}

	dir := filepath.Join(s.Root, treeName(url))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if files, ok := s.Seed[url]; ok {
		for rel, content := range files {
			target := filepath.Join(dir, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return nil, err
			}
			if err := os.WriteFile(target, []byte(content), 0o600); err != nil {
				return nil, err
			}
		}
	} else if !s.MissingDockerfile[url] {
		dockerfile := filepath.Join(dir, "Dockerfile")
		if err := os.WriteFile(dockerfile, []byte("FROM scratch\n"), 0o600); err != nil {
			return nil, err
		}
	}
	return &FakeHandle{RepoURL: url, Dir: dir}, nil
}

func (s *SpySource) Checkout(
	_ context.Context,
	handle domain.RepositoryHandle,
	revision string,
) (string, error) {
	s.CheckoutCalls = append(s.CheckoutCalls, CheckoutCall{URL: handle.URL(), Revision: revision})
	if err := s.CheckoutErrs[revision]; err != nil {
		return "", err
	}
	return handle.WorkingTree(), nil
}

// treeName derives a stable directory name from a source URL so engine spies
// can key expectations on filepath.Base of the working tree.
func treeName(url string) string {
	base := path.Base(strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git"))
	if base == "" || base == "." || base == "/" {
		return "tree"
	}
	return base
}

// ---------------------------------------------------------------------------
// SpyEngine
// ---------------------------------------------------------------------------

// SpyEngine implements domain.ImageEngine as a configurable spy. Build
// returns a fresh artifact ID per call unless BuildIDs overrides it; error
// maps are keyed by filepath.Base of the working tree (Build), "name:tag"
// (Tag) and the image name (Push).
type SpyEngine struct {
	// --- Ping ---
	PingErr error

	// --- Build ---
	BuildErrs map[string]error  // base of working tree -> error
	BuildIDs  map[string]string // base of working tree -> artifact ID
	// spy: working tree paths built, in order
	BuildCalls []string
	builds     int

	// --- Tag ---
	TagErrs map[string]error // "name:tag" -> error
	// spy: tags applied, in order
	TagCalls []TagCall

	// --- Push ---
	PushErrs map[string]error // name -> error
	// spy: names pushed, in order
	PushedNames []string

	// --- Pull ---
	PullErr error
	// spy: names pulled, in order
	PulledNames []string
}

// TagCall records a single invocation of Tag.
type TagCall struct {
	ArtifactID string
	Name       string
	Tag        string
}

var _ domain.ImageEngine = (*SpyEngine)(nil)

func (e *SpyEngine) Ping(_ context.Context) error { return e.PingErr }

func (e *SpyEngine) Build(_ context.Context, workingTree string) (string, error) {
	e.BuildCalls = append(e.BuildCalls, workingTree)
	base := filepath.Base(workingTree)
	if err := e.BuildErrs[base]; err != nil {
		return "", err
	}
	e.builds++
	if id, ok := e.BuildIDs[base]; ok {
		return id, nil
	}
	return fmt.Sprintf("sha256:%064x", e.builds), nil
}

func (e *SpyEngine) Tag(_ context.Context, artifactID, name, tag string) error {
	e.TagCalls = append(e.TagCalls, TagCall{ArtifactID: artifactID, Name: name, Tag: tag})
	return e.TagErrs[name+":"+tag]
}

func (e *SpyEngine) Push(_ context.Context, name string) error {
	e.PushedNames = append(e.PushedNames, name)
	return e.PushErrs[name]
}

func (e *SpyEngine) Pull(_ context.Context, name string) error {
	e.PulledNames = append(e.PulledNames, name)
	return e.PullErr
}

// ---------------------------------------------------------------------------
// DummySource — satisfies the interface but does nothing (for compile checks)
// ---------------------------------------------------------------------------

// DummySource is a no-op implementation of domain.RepositorySource.
// Use it only for interface compliance tests or as a placeholder.
type DummySource struct{}

var _ domain.RepositorySource = (*DummySource)(nil)

func (d *DummySource) Fetch(_ context.Context, _ string) (domain.RepositoryHandle, error) {
	return nil, nil //nolint:nilnil // dummy no-op
}

func (d *DummySource) Checkout(
	_ context.Context,
	_ domain.RepositoryHandle,
	_ string,
) (string, error) {
	return "", nil
}

// ---------------------------------------------------------------------------
// DummyEngine — satisfies the interface but does nothing
// ---------------------------------------------------------------------------

// DummyEngine is a no-op implementation of domain.ImageEngine.
type DummyEngine struct{}

var _ domain.ImageEngine = (*DummyEngine)(nil)

func (d *DummyEngine) Ping(_ context.Context) error { return nil }

func (d *DummyEngine) Build(_ context.Context, _ string) (string, error) { return "", nil }

func (d *DummyEngine) Tag(_ context.Context, _, _, _ string) error { return nil }

func (d *DummyEngine) Push(_ context.Context, _ string) error { return nil }

func (d *DummyEngine) Pull(_ context.Context, _ string) error { return nil }
