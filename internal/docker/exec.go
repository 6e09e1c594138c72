package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/griffithind/kitchenx/internal/util"
	"mvdan.cc/sh/v3/syntax"
)

// Invocation is a single docker CLI call. Stdin is nil when the process
// should not receive any input.
type Invocation struct {
	Args  []string
	Stdin []byte
}

// Result is the captured outcome of an invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Executor runs docker CLI invocations.
// A non-zero exit is reported through Result.ExitCode with a nil error;
// the error is reserved for failures to run the process at all, including
// context cancellation.
type Executor interface {
	Run(ctx context.Context, inv Invocation) (*Result, error)
}

// ExecCommandFunc creates an exec.Cmd. Tests replace it to fake the CLI.
type ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// execCommand is a variable to allow mocking in tests
var execCommand ExecCommandFunc = exec.CommandContext

// CLIExecutor runs invocations against the real docker CLI.
type CLIExecutor struct {
	opts CLIOptions

	// Progress, when set, receives build output as it is produced in
	// addition to it being captured.
	Progress io.Writer
}

// NewCLIExecutor creates an executor using the given global CLI options.
func NewCLIExecutor(opts CLIOptions) *CLIExecutor {
	return &CLIExecutor{opts: opts}
}

// Ensure CLIExecutor implements Executor.
var _ Executor = (*CLIExecutor)(nil)

// CommandLine returns the shell-quoted command line for inv, suitable for
// logs and dry runs.
func (e *CLIExecutor) CommandLine(inv Invocation) string {
	name, argv := e.opts.Command(inv.Args...)
	return ShellJoin(append([]string{name}, argv...))
}

// Run executes the invocation and captures its output.
func (e *CLIExecutor) Run(ctx context.Context, inv Invocation) (*Result, error) {
	name, argv := e.opts.Command(inv.Args...)

	var stdout, stderr bytes.Buffer
	cmd := execCommand(ctx, name, argv...)
	if inv.Stdin != nil {
		cmd.Stdin = bytes.NewReader(inv.Stdin)
	}
	if e.Progress != nil {
		cmd.Stdout = io.MultiWriter(&stdout, e.Progress)
		cmd.Stderr = io.MultiWriter(&stderr, e.Progress)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	util.Debug("running docker", "command", e.CommandLine(inv), "stdin", inv.Stdin != nil)

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}

	// context cancellations/timeouts show clearly
	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("command interrupted: %s: %w", e.CommandLine(inv), ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.ExitCode = -1
	return result, fmt.Errorf("failed to run command: %s: %w", e.CommandLine(inv), err)
}

// ShellJoin renders args as a single shell-safe command line.
func ShellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			// Only strings holding NUL bytes are rejected; they cannot be
			// passed as arguments anyway.
			q = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
