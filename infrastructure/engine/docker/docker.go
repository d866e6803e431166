package docker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/distribution/reference"
	"github.com/docker/docker/api/types"
	registrytypes "github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/moby/term"

	"github.com/rios0rios0/stackbrew/domain"
)

// dockerfileName is the build descriptor expected at the context root.
const dockerfileName = "Dockerfile"

// Engine implements domain.ImageEngine over the Docker Engine API.
type Engine struct {
	cli        client.APIClient
	out        io.Writer
	outFd      uintptr
	isTerminal bool
}

// New creates an engine wired to the environment's Docker daemon, honoring
// DOCKER_HOST and friends. Construction does not dial; Ping does.
func New() (*Engine, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	outFd, isTerminal := term.GetFdInfo(os.Stdout)
	return &Engine{cli: cli, out: os.Stdout, outFd: outFd, isTerminal: isTerminal}, nil
}

// Ping verifies the daemon answers.
func (e *Engine) Ping(ctx context.Context) error {
	if _, err := e.cli.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEngineUnreachable, err)
	}
	return nil
}

// Build tars the working tree at path, streams it to the daemon and returns
// the ID of the resulting image. The image is left untagged; naming is a
// separate Tag call.
func (e *Engine) Build(ctx context.Context, path string) (string, error) {
	//nolint:exhaustruct // Minimal TarOptions initialization with required fields only
	buildContext, err := archive.TarWithOptions(path, &archive.TarOptions{
		Compression: archive.Uncompressed,
	})
	if err != nil {
		return "", fmt.Errorf("failed to tar build context %s: %w", path, err)
	}
	defer buildContext.Close()

	//nolint:exhaustruct // Minimal ImageBuildOptions initialization with required fields only
	response, err := e.cli.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Dockerfile: dockerfileName,
		Remove:     true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBuildFailed, err)
	}
	defer response.Body.Close()

	// The daemon reports the image ID through an aux message at the end of
	// the build stream.
	var artifactID string
	aux := func(msg jsonmessage.JSONMessage) {
		if msg.Aux == nil {
			return
		}
		var result types.BuildResult
		if unmarshalErr := json.Unmarshal(*msg.Aux, &result); unmarshalErr == nil {
			artifactID = result.ID
		}
	}

	if streamErr := jsonmessage.DisplayJSONMessagesStream(
		response.Body, e.out, e.outFd, e.isTerminal, aux,
	); streamErr != nil {
		var jsonErr *jsonmessage.JSONError
		if errors.As(streamErr, &jsonErr) {
			return "", fmt.Errorf("%w: %s", domain.ErrBuildFailed, jsonErr.Message)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrBuildFailed, streamErr)
	}

	if artifactID == "" {
		return "", fmt.Errorf("%w: daemon did not report an image ID", domain.ErrBuildFailed)
	}
	return artifactID, nil
}

// Tag assigns name:tag to an existing artifact.
func (e *Engine) Tag(ctx context.Context, artifactID, name, tag string) error {
	named, err := reference.ParseNormalizedNamed(name)
	if err != nil {
		return fmt.Errorf("invalid image name %q: %w", name, err)
	}
	tagged, err := reference.WithTag(named, tag)
	if err != nil {
		return fmt.Errorf("invalid image tag %q: %w", tag, err)
	}

	target := reference.FamiliarString(tagged)
	if tagErr := e.cli.ImageTag(ctx, artifactID, target); tagErr != nil {
		return fmt.Errorf("failed to tag %s as %s: %w", artifactID, target, tagErr)
	}
	return nil
}

// Push uploads every tag of name. The daemon wants an auth header even for
// anonymous pushes.
func (e *Engine) Push(ctx context.Context, name string) error {
	named, err := reference.ParseNormalizedNamed(name)
	if err != nil {
		return fmt.Errorf("invalid image name %q: %w", name, err)
	}

	auth, err := anonymousAuth()
	if err != nil {
		return err
	}
	//nolint:exhaustruct // Minimal ImagePushOptions initialization with required fields only
	response, err := e.cli.ImagePush(ctx, reference.FamiliarString(named), types.ImagePushOptions{
		All:          true,
		RegistryAuth: auth,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrRegistryUnreachable, name, err)
	}
	defer response.Close()

	if streamErr := jsonmessage.DisplayJSONMessagesStream(
		response, e.out, e.outFd, e.isTerminal, nil,
	); streamErr != nil {
		var jsonErr *jsonmessage.JSONError
		if errors.As(streamErr, &jsonErr) {
			return fmt.Errorf("%w: %s: %s", domain.ErrPushRejected, name, jsonErr.Message)
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrPushRejected, name, streamErr)
	}
	return nil
}

// Pull fetches a public image, defaulting the tag when name has none.
func (e *Engine) Pull(ctx context.Context, name string) error {
	named, err := reference.ParseNormalizedNamed(name)
	if err != nil {
		return fmt.Errorf("invalid image name %q: %w", name, err)
	}
	named = reference.TagNameOnly(named)

	//nolint:exhaustruct // Minimal ImagePullOptions initialization with required fields only
	response, err := e.cli.ImagePull(ctx, reference.FamiliarString(named), types.ImagePullOptions{})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrRegistryUnreachable, name, err)
	}
	defer response.Close()

	if streamErr := jsonmessage.DisplayJSONMessagesStream(
		response, e.out, e.outFd, e.isTerminal, nil,
	); streamErr != nil {
		return fmt.Errorf("failed to pull %s: %w", name, streamErr)
	}
	return nil
}

// anonymousAuth encodes an empty auth config for the X-Registry-Auth header.
func anonymousAuth() (string, error) {
	//nolint:exhaustruct // anonymous access sends an empty auth config
	auth, err := registrytypes.EncodeAuthConfig(registrytypes.AuthConfig{})
	if err != nil {
		return "", fmt.Errorf("failed to encode registry auth: %w", err)
	}
	return auth, nil
}
