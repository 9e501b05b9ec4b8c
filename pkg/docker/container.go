package docker

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/go-connections/nat"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultVersion is the ClickHouse image tag used when none is given.
	DefaultVersion = "25.7"

	startupTimeout = 5 * time.Minute
)

// ErrNotRunning is returned by accessors called before Start.
var ErrNotRunning = errors.New("container is not running")

type (
	// DockerOptions represents options for running ClickHouse in Docker
	DockerOptions struct {
		// Version is the ClickHouse image tag (default: DefaultVersion).
		Version string

		// ConfigDir is mounted at /etc/clickhouse-server/config.d. Relative
		// paths are resolved against the working directory.
		ConfigDir string
	}

	// Container is a single ClickHouse server.
	Container struct {
		options   DockerOptions
		container *clickhouse.ClickHouseContainer
	}
)

// New creates a container with default options.
func New() *Container {
	return NewWithOptions(DockerOptions{})
}

// NewWithOptions creates a container with custom options.
//
// Example:
//
//	container := docker.NewWithOptions(docker.DockerOptions{Version: "24.3"})
//	if err := container.Start(ctx); err != nil {
//		return err
//	}
//	defer container.Stop(ctx)
func NewWithOptions(opts DockerOptions) *Container {
	return &Container{options: opts}
}

// Start pulls and starts the server and waits for its HTTP endpoint.
func (c *Container) Start(ctx context.Context) error {
	if c.container != nil {
		return errors.New("container is already running")
	}

	version := c.options.Version
	if version == "" {
		version = DefaultVersion
	}

	customizers := []testcontainers.ContainerCustomizer{
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword(""),
		testcontainers.WithEnv(map[string]string{"CLICKHOUSE_DEFAULT_ACCESS_MANAGEMENT": "1"}),
		testcontainers.WithWaitStrategyAndDeadline(
			startupTimeout,
			wait.
				NewHTTPStrategy("/").
				WithPort(nat.Port("8123/tcp")).
				WithStatusCodeMatcher(func(status int) bool {
					return status == 200
				}),
		),
	}

	if c.options.ConfigDir != "" {
		dir, err := filepath.Abs(c.options.ConfigDir)
		if err != nil {
			return errors.Wrapf(err, "failed to get absolute path for ConfigDir: %s", c.options.ConfigDir)
		}

		customizers = append(
			customizers,
			testcontainers.WithHostConfigModifier(func(hostConfig *container.HostConfig) {
				hostConfig.Mounts = []mount.Mount{
					{
						Type:   mount.TypeBind,
						Source: dir,
						Target: "/etc/clickhouse-server/config.d",
					},
				}
			}),
		)
	}

	ch, err := clickhouse.Run(ctx, fmt.Sprintf("clickhouse/clickhouse-server:%s-alpine", version), customizers...)
	if err != nil {
		return errors.Wrap(err, "failed to start ClickHouse container")
	}

	c.container = ch
	return nil
}

// Stop terminates the container. Stopping a stopped container is a no-op.
func (c *Container) Stop(ctx context.Context) error {
	if c.container == nil {
		return nil
	}

	err := c.container.Terminate(ctx)
	c.container = nil
	return errors.Wrap(err, "failed to stop ClickHouse container")
}

// GetDSN returns a clickhouse:// DSN for the native protocol.
func (c *Container) GetDSN() (string, error) {
	if c.container == nil {
		return "", ErrNotRunning
	}

	dsn, err := c.container.ConnectionString(context.Background())
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection string")
	}
	return dsn, nil
}

func (c *Container) IsRunning() bool {
	return c.container != nil
}

// StartForTest starts a container for t and stops it on cleanup. The test is
// skipped under -short or when no Docker daemon is reachable.
func StartForTest(t *testing.T, opts DockerOptions) *Container {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping Docker tests in short mode")
	}

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	if err := exec.Command("docker", "ps").Run(); err != nil {
		t.Skip("Docker daemon not running")
	}

	c := NewWithOptions(opts)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("failed to start ClickHouse: %v", err)
	}

	t.Cleanup(func() { _ = c.Stop(context.Background()) })
	return c
}
