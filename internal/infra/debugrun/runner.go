// Where: cli/internal/infra/debugrun/runner.go
// What: Run a function's debug harness inside a Node container.
// Why: Exercise a function locally without installing Node on the host.
package debugrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/poruru/alicf/cli/internal/infra/fileops"
	"github.com/poruru/alicf/cli/internal/meta"
)

const (
	DefaultImage = "node:18-alpine"
	workDir      = "/app"
	harnessFile  = "debug.js"
)

var ErrHarnessMissing = errors.New("debug harness not found")

// Runner starts one short-lived container per run.
type Runner struct {
	Client DockerClient
	Image  string
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Run executes `node debug.js <args>` in functionDir and returns the
// container exit code.
func (r Runner) Run(ctx context.Context, functionDir, args string) (int, error) {
	if r.Client == nil {
		return 0, errors.New("docker client is required")
	}
	if !fileops.FileExists(filepath.Join(functionDir, harnessFile)) {
		return 0, fmt.Errorf("%w: %s", ErrHarnessMissing, filepath.Join(functionDir, harnessFile))
	}
	absDir, err := filepath.Abs(functionDir)
	if err != nil {
		return 0, fmt.Errorf("resolve function dir: %w", err)
	}
	if strings.TrimSpace(args) == "" {
		args = "{}"
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	img := r.image()

	if err := r.ensureImage(ctx, img, logger); err != nil {
		return 0, err
	}

	created, err := r.Client.ContainerCreate(ctx,
		&container.Config{
			Image:      img,
			Cmd:        []string{"node", harnessFile, args},
			WorkingDir: workDir,
			Labels:     map[string]string{meta.AppName + ".function": filepath.Base(absDir)},
		},
		&container.HostConfig{
			Mounts: []mount.Mount{{Type: mount.TypeBind, Source: absDir, Target: workDir}},
		},
		nil, nil, "")
	if err != nil {
		return 0, fmt.Errorf("create container: %w", err)
	}
	defer func() {
		if err := r.Client.ContainerRemove(context.WithoutCancel(ctx), created.ID, container.RemoveOptions{Force: true}); err != nil {
			logger.Warn("remove debug container", "id", created.ID, "error", err)
		}
	}()

	logger.Debug("start debug container", "id", created.ID, "image", img)
	if err := r.Client.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return 0, fmt.Errorf("start container: %w", err)
	}

	statusCh, errCh := r.Client.ContainerWait(ctx, created.ID, container.WaitConditionNotRunning)
	var exitCode int
	select {
	case err := <-errCh:
		if err != nil {
			return 0, fmt.Errorf("wait container: %w", err)
		}
	case status := <-statusCh:
		if status.Error != nil && status.Error.Message != "" {
			return 0, fmt.Errorf("wait container: %s", status.Error.Message)
		}
		exitCode = int(status.StatusCode)
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	if err := r.copyLogs(ctx, created.ID); err != nil {
		return exitCode, err
	}
	return exitCode, nil
}

func (r Runner) image() string {
	if strings.TrimSpace(r.Image) == "" {
		return DefaultImage
	}
	return r.Image
}

func (r Runner) ensureImage(ctx context.Context, img string, logger *slog.Logger) error {
	images, err := r.Client.ImageList(ctx, image.ListOptions{
		Filters: filters.NewArgs(filters.Arg("reference", img)),
	})
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}
	if len(images) > 0 {
		return nil
	}
	logger.Debug("pull image", "image", img)
	reader, err := r.Client.ImagePull(ctx, img, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("pull image %s: %w", img, err)
	}
	defer reader.Close()
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("pull image %s: %w", img, err)
	}
	return nil
}

func (r Runner) copyLogs(ctx context.Context, id string) error {
	logs, err := r.Client.ContainerLogs(ctx, id, container.LogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return fmt.Errorf("read container logs: %w", err)
	}
	defer logs.Close()
	stdout, stderr := r.Stdout, r.Stderr
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	if _, err := stdcopy.StdCopy(stdout, stderr, logs); err != nil {
		return fmt.Errorf("copy container logs: %w", err)
	}
	return nil
}
