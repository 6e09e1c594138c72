package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/griffithind/kitchenx/internal/config"
	"github.com/griffithind/kitchenx/internal/docker"
)

// CLIContext holds the resources shared by commands: the loaded build
// configuration and a context canceled on interrupt or timeout.
type CLIContext struct {
	Ctx       context.Context
	Workspace string
	Config    *config.BuildConfig

	cancel context.CancelFunc
}

// NewCLIContext loads configuration for the workspace. A zero timeout
// means no deadline. The caller must call Close() when done.
func NewCLIContext(timeout time.Duration) (*CLIContext, error) {
	cfg, err := config.Load(workspacePath, configPath)
	if err != nil {
		return nil, err
	}

	// Interrupts cancel the build so deferred cleanup still runs.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cancel := context.CancelFunc(stop)
	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
		cancel = func() {
			cancelTimeout()
			stop()
		}
	}

	return &CLIContext{
		Ctx:       ctx,
		Workspace: workspacePath,
		Config:    cfg,
		cancel:    cancel,
	}, nil
}

// DockerClient creates an Engine API client for the configured daemon.
func (c *CLIContext) DockerClient() (*docker.Client, error) {
	return docker.NewClient(c.Config.CLIOptions)
}

// Close releases resources held by the CLIContext.
func (c *CLIContext) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}
