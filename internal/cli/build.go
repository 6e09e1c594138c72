package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/griffithind/kitchenx/internal/build"
	"github.com/griffithind/kitchenx/internal/docker"
	kxerrors "github.com/griffithind/kitchenx/internal/errors"
	"github.com/griffithind/kitchenx/internal/ui"
)

var (
	buildDockerfile string
	buildTimeout    time.Duration
	buildDryRun     bool
	buildVerify     bool
)

// commandRunner runs docker invocations and can render them for display.
type commandRunner interface {
	docker.Executor
	CommandLine(inv docker.Invocation) string
}

// newRunner creates the runner used by build. Tests replace it.
var newRunner = func(opts docker.CLIOptions, progress io.Writer) commandRunner {
	e := docker.NewCLIExecutor(opts)
	e.Progress = progress
	return e
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the test image from a generated Dockerfile",
	Long: `Build the test image from a generated Dockerfile and print its id.

The Dockerfile is copied to a uniquely named temporary file in the
workspace (or build_tempdir) for the duration of the build. With
build_context enabled the workspace is sent as build context; otherwise
the Dockerfile is streamed on stdin with no context.

Use --dockerfile - to read the Dockerfile from stdin.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildDockerfile, "dockerfile", "f", "", "generated Dockerfile to build (default: dockerfile setting, then Dockerfile)")
	buildCmd.Flags().DurationVar(&buildTimeout, "timeout", 0, "abort the build after this duration (0 means no limit)")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "print the docker command without running it")
	buildCmd.Flags().BoolVar(&buildVerify, "verify", false, "confirm the built image exists through the Docker API")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cliCtx, err := NewCLIContext(buildTimeout)
	if err != nil {
		return err
	}
	defer cliCtx.Close()

	definition, err := readDefinition(cliCtx.Workspace, definitionSource(cliCtx))
	if err != nil {
		return err
	}

	var progress io.Writer
	if ui.IsVerbose() {
		progress = ui.ErrWriter()
	}
	runner := newRunner(cliCtx.Config.CLIOptions, progress)

	var opts []build.Option
	if buildVerify && !buildDryRun {
		client, err := cliCtx.DockerClient()
		if err != nil {
			return kxerrors.DockerConnect(err)
		}
		defer client.Close()
		if err := client.Ping(cliCtx.Ctx); err != nil {
			return kxerrors.DockerNotRunning(err)
		}
		opts = append(opts, build.WithVerifier(client))
	}
	builder := build.NewBuilder(runner, cliCtx.Workspace, opts...)

	if buildDryRun {
		plan, err := builder.Plan(cliCtx.Config, definition)
		if err != nil {
			return err
		}
		defer plan.Release()
		ui.Result(runner.CommandLine(plan.Invocation))
		return nil
	}

	var spinner *ui.Spinner
	if progress == nil {
		spinner = ui.StartSpinner("Building image...")
	} else {
		spinner = &ui.Spinner{}
	}

	id, err := builder.BuildImage(cliCtx.Ctx, cliCtx.Config, definition)
	if err != nil {
		spinner.Fail("Image build failed")
		return err
	}
	spinner.Success("Image built")

	ui.Result(id)
	return nil
}

// definitionSource picks the Dockerfile path from the flag, then the
// configuration, then the conventional name.
func definitionSource(c *CLIContext) string {
	switch {
	case buildDockerfile != "":
		return buildDockerfile
	case c.Config.Dockerfile != "":
		return c.Config.Dockerfile
	default:
		return "Dockerfile"
	}
}

func readDefinition(workspace, source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", kxerrors.FileRead("<stdin>", err)
		}
		return string(data), nil
	}

	path := source
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspace, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", kxerrors.FileRead(path, err)
	}
	return string(data), nil
}
