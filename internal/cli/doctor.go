package cli

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/griffithind/kitchenx/internal/build"
	"github.com/griffithind/kitchenx/internal/docker"
	kxerrors "github.com/griffithind/kitchenx/internal/errors"
	"github.com/griffithind/kitchenx/internal/hostvars"
	"github.com/griffithind/kitchenx/internal/ui"
	"github.com/griffithind/kitchenx/internal/util"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system requirements",
	Long: `Check that the requirements for building test images are met.

This command checks:
- the docker CLI binary is on PATH
- the Docker daemon answers over the configured socket
- build_tempdir exists when it is set
- whether host vars directories are present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

// CheckResult represents a single check result.
type CheckResult struct {
	Name    string
	Result  ui.CheckStatus
	Message string

	// Err is the structured failure behind a failed check, if any.
	Err error
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cliCtx, err := NewCLIContext(30 * time.Second)
	if err != nil {
		return err
	}
	defer cliCtx.Close()

	cfg := cliCtx.Config
	results := []CheckResult{
		checkBinary(cfg.CLIOptions),
		checkDaemon(cliCtx.Ctx, cfg.CLIOptions),
		checkTempdir(cliCtx.Workspace, cfg.BuildTempdir),
		checkHostVars(cliCtx.Workspace),
	}

	ui.Printf("%s", ui.FormatLabel("Workspace", cliCtx.Workspace))
	ui.Printf("")

	for _, r := range results {
		ui.Printf("%s", ui.FormatCheck(r.Result, r.Name, r.Message))
	}
	ui.Printf("")

	if err := doctorError(results); err != nil {
		return err
	}
	ui.Success("All checks passed")
	return nil
}

// doctorError summarizes failed checks. The first structured cause is
// returned so its hint reaches the user.
func doctorError(results []CheckResult) error {
	var failed []string
	var cause error
	for _, r := range results {
		if r.Result != ui.CheckFail {
			continue
		}
		failed = append(failed, r.Name)
		if cause == nil && r.Err != nil {
			cause = r.Err
		}
	}
	if len(failed) == 0 {
		return nil
	}
	if cause != nil {
		return cause
	}
	return fmt.Errorf("%d check(s) failed: %s", len(failed), strings.Join(failed, ", "))
}

func checkBinary(opts docker.CLIOptions) CheckResult {
	name := opts.Binary
	if name == "" {
		name = docker.DefaultBinary
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return CheckResult{Name: "Docker CLI", Result: ui.CheckFail, Message: fmt.Sprintf("%s not found on PATH", name)}
	}
	return CheckResult{Name: "Docker CLI", Result: ui.CheckPass, Message: path}
}

func checkDaemon(ctx context.Context, opts docker.CLIOptions) CheckResult {
	client, err := docker.NewClient(opts)
	if err != nil {
		return CheckResult{Name: "Docker daemon", Result: ui.CheckFail, Message: fmt.Sprintf("failed to connect: %v", err),
			Err: kxerrors.DockerConnect(err)}
	}
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		util.Debug("docker ping failed", "error", err)
		return CheckResult{Name: "Docker daemon", Result: ui.CheckFail, Message: fmt.Sprintf("not responding: %v", err),
			Err: kxerrors.DockerNotRunning(err)}
	}

	version, err := client.ServerVersion(ctx)
	if err != nil {
		return CheckResult{Name: "Docker daemon", Result: ui.CheckPass, Message: "connected (version unknown)"}
	}
	msg := "version " + version
	if opts.IsRemote() {
		msg += " (remote, build_context defaults to off)"
	}
	return CheckResult{Name: "Docker daemon", Result: ui.CheckPass, Message: msg}
}

func checkTempdir(workspace, tempdir string) CheckResult {
	if tempdir == "" {
		return CheckResult{Name: "build_tempdir", Result: ui.CheckSkip, Message: "not set"}
	}
	dir := build.TargetDir(workspace, tempdir)
	if !util.IsDir(dir) {
		return CheckResult{Name: "build_tempdir", Result: ui.CheckFail, Message: fmt.Sprintf("%s does not exist", dir)}
	}
	return CheckResult{Name: "build_tempdir", Result: ui.CheckPass, Message: dir}
}

func checkHostVars(workspace string) CheckResult {
	for _, dir := range []string{hostvars.PrimaryDir, hostvars.FallbackDir} {
		if util.IsDir(filepath.Join(workspace, dir)) {
			return CheckResult{Name: "Host vars", Result: ui.CheckPass, Message: dir}
		}
	}
	return CheckResult{Name: "Host vars", Result: ui.CheckWarn, Message: "no host_vars directory"}
}
