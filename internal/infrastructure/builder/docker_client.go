package builder

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
)

// DockerClient wraps the Docker operations the deploy trigger needs
type DockerClient struct {
	client *client.Client
}

// NewDockerClient creates a new Docker client wrapper
func NewDockerClient() (*DockerClient, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return &DockerClient{client: cli}, nil
}

// BuildImageOptions contains options for building a project image
type BuildImageOptions struct {
	ContextPath string
	Tag         string
	BuildArgs   map[string]*string
}

// BuildImage builds a project image and drains the build output, returning
// the first build error reported by the daemon
func (dc *DockerClient) BuildImage(ctx context.Context, opts BuildImageOptions) error {
	buildContext, err := archive.TarWithOptions(opts.ContextPath, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("failed to create build context: %w", err)
	}
	defer buildContext.Close()

	response, err := dc.client.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:       []string{opts.Tag},
		Dockerfile: "Dockerfile",
		BuildArgs:  opts.BuildArgs,
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to build image: %w", err)
	}
	defer response.Body.Close()

	return drainBuildOutput(response.Body)
}

// RecreateContainer replaces the named container with a fresh one running
// the given image and environment
func (dc *DockerClient) RecreateContainer(ctx context.Context, containerName, imageName string, env []string) (string, error) {
	// Best effort teardown of the previous container; it may not exist
	timeout := 30
	_ = dc.client.ContainerStop(ctx, containerName, container.StopOptions{Timeout: &timeout})
	_ = dc.client.ContainerRemove(ctx, containerName, container.RemoveOptions{Force: true})

	resp, err := dc.client.ContainerCreate(ctx, &container.Config{
		Image: imageName,
		Env:   env,
	}, &container.HostConfig{
		RestartPolicy: container.RestartPolicy{Name: container.RestartPolicyUnlessStopped},
	}, nil, nil, containerName)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	if err := dc.client.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	return resp.ID, nil
}

// buildMessage is one line of the daemon's streamed build output
type buildMessage struct {
	Stream string `json:"stream"`
	Error  string `json:"error"`
}

func drainBuildOutput(body io.Reader) error {
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		var msg buildMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}
		if msg.Error != "" {
			return fmt.Errorf("build failed: %s", msg.Error)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read build output: %w", err)
	}
	return nil
}
