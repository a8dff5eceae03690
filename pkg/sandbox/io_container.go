package sandbox

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/strslice"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

const containerLicenseRoot = "/licenses"

// CheckDockerAvailability verifies Docker is installed and accessible
func CheckDockerAvailability() error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("Docker not available: %w", err)
	}
	defer cli.Close()

	if _, err := cli.Ping(context.Background()); err != nil {
		return fmt.Errorf("Docker not available: %w", err)
	}
	return nil
}

// ReadFileInContainer prints a single file from a read-only mount of root
// inside a throwaway container and returns its stdout.
func ReadFileInContainer(filePath, root, image string, timeout time.Duration, memLimit string, cpuLimit int) (string, error) {
	cmd, err := containerCatCommand(filePath, root)
	if err != nil {
		return "", err
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return "", fmt.Errorf("failed to create Docker client: %w", err)
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	containerConfig := &container.Config{
		Image:      image,
		Cmd:        cmd,
		WorkingDir: containerLicenseRoot,
		User:       "1000:1000",
	}

	hostConfig := &container.HostConfig{
		NetworkMode: "none",
		Resources: container.Resources{
			Memory:   parseMemoryLimit(memLimit),
			NanoCPUs: int64(cpuLimit) * 1000000000,
		},
		Mounts: []mount.Mount{
			{
				Type:     mount.TypeBind,
				Source:   root,
				Target:   containerLicenseRoot,
				ReadOnly: true,
			},
		},
		CapDrop:     strslice.StrSlice{"ALL"},
		SecurityOpt: []string{"no-new-privileges"},
	}

	resp, err := cli.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, "")
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}
	defer cli.ContainerRemove(context.Background(), resp.ID, types.ContainerRemoveOptions{Force: true})

	if err := cli.ContainerStart(ctx, resp.ID, types.ContainerStartOptions{}); err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	statusCh, errCh := cli.ContainerWait(ctx, resp.ID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return "", fmt.Errorf("container read failed: %w", err)
		}
	case status := <-statusCh:
		if status.StatusCode != 0 {
			return "", fmt.Errorf("cat exited with status %d", status.StatusCode)
		}
	case <-ctx.Done():
		return "", fmt.Errorf("read timed out after %v", timeout)
	}

	logReader, err := cli.ContainerLogs(ctx, resp.ID, types.ContainerLogsOptions{ShowStdout: true})
	if err != nil {
		return "", fmt.Errorf("failed to get container logs: %w", err)
	}
	defer logReader.Close()

	var stdout strings.Builder
	if err := readDockerLogs(logReader, &stdout); err != nil {
		return "", fmt.Errorf("failed to read container output: %w", err)
	}
	return stdout.String(), nil
}

// ValidateIOContainer runs pre-flight checks for containerized reads
func ValidateIOContainer(root, image string) error {
	if err := CheckDockerAvailability(); err != nil {
		return err
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("failed to create Docker client: %w", err)
	}
	defer cli.Close()

	if _, _, err := cli.ImageInspectWithRaw(context.Background(), image); err != nil {
		return fmt.Errorf("I/O container image not found: %s", image)
	}

	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("license root not accessible: %w", err)
	}
	return nil
}

// containerCatCommand maps a host path under root to an exec-form cat
// invocation. No shell is involved so file names are never interpreted.
func containerCatCommand(filePath, root string) (strslice.StrSlice, error) {
	relPath, err := filepath.Rel(root, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get relative path: %w", err)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("path escapes license root: %s", filePath)
	}
	return strslice.StrSlice{"cat", "--", path.Join(containerLicenseRoot, filepath.ToSlash(relPath))}, nil
}

// parseMemoryLimit converts a limit like "256m" or "1g" to bytes
func parseMemoryLimit(limit string) int64 {
	if limit == "" {
		return 0
	}
	if strings.HasSuffix(limit, "m") || strings.HasSuffix(limit, "M") {
		var mb int64
		fmt.Sscanf(limit, "%d", &mb)
		return mb * 1024 * 1024
	}
	if strings.HasSuffix(limit, "g") || strings.HasSuffix(limit, "G") {
		var gb int64
		fmt.Sscanf(limit, "%d", &gb)
		return gb * 1024 * 1024 * 1024
	}
	return 0
}

// readDockerLogs demultiplexes a Docker log stream and copies stdout frames
// to w. Stderr frames are discarded.
func readDockerLogs(reader io.Reader, w io.Writer) error {
	_, err := stdcopy.StdCopy(w, io.Discard, reader)
	return err
}
