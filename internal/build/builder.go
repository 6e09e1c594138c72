// Package build orchestrates docker image builds from generated build
// definitions.
//
// A build writes the definition to a uniquely named temporary file, invokes
// docker build against it in either full-context or streamed mode, parses
// the resulting image id, and removes the file on every exit path.
package build

import (
	"context"

	"github.com/griffithind/kitchenx/internal/config"
	"github.com/griffithind/kitchenx/internal/docker"
	kxerrors "github.com/griffithind/kitchenx/internal/errors"
	"github.com/griffithind/kitchenx/internal/util"
)

// Verifier confirms a built image is known to the daemon.
type Verifier interface {
	ImageExists(ctx context.Context, ref string) (bool, error)
}

// Builder builds images through an Executor.
type Builder struct {
	exec     docker.Executor
	cwd      string
	verifier Verifier
}

// Option configures a Builder.
type Option func(*Builder)

// WithVerifier makes BuildImage check the parsed image id against v.
func WithVerifier(v Verifier) Option {
	return func(b *Builder) {
		b.verifier = v
	}
}

// NewBuilder creates a builder running commands through exec. The cwd is
// the build working directory and must be absolute.
func NewBuilder(exec docker.Executor, cwd string, opts ...Option) *Builder {
	b := &Builder{exec: exec, cwd: cwd}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Plan is a build invocation together with the definition file it refers
// to. Release must be called once the plan is no longer needed.
type Plan struct {
	Invocation docker.Invocation
	Definition *DefinitionFile
}

// Release removes the plan's definition file.
func (p *Plan) Release() {
	if p.Definition == nil {
		return
	}
	if err := p.Definition.Remove(); err != nil {
		util.Warn("failed to remove build definition", "path", p.Definition.Path(), "error", err)
	}
}

// Plan writes the definition and assembles the invocation without running
// it. On error nothing is left on disk.
func (b *Builder) Plan(cfg *config.BuildConfig, definition string) (*Plan, error) {
	args := CommandArgs(cfg)

	def, err := WriteDefinition(b.cwd, cfg.BuildTempdir, definition)
	if err != nil {
		return nil, err
	}
	plan := &Plan{Definition: def}

	full := cfg.FullContext()
	ctxArgs, err := ResolveContext(full, def.Path(), b.cwd)
	if err != nil {
		plan.Release()
		return nil, err
	}

	plan.Invocation.Args = append(args, "-f", ctxArgs.DefinitionPath, ctxArgs.Context)
	if !full {
		plan.Invocation.Stdin = []byte(definition)
	}
	return plan, nil
}

// BuildImage builds definition according to cfg and returns the image id.
// The temporary definition file is removed before returning, including on
// failure and cancellation.
func (b *Builder) BuildImage(ctx context.Context, cfg *config.BuildConfig, definition string) (string, error) {
	plan, err := b.Plan(cfg, definition)
	if err != nil {
		return "", err
	}
	defer plan.Release()

	util.Debug("running image build", "args", plan.Invocation.Args, "stdin", plan.Invocation.Stdin != nil)

	res, err := b.exec.Run(ctx, plan.Invocation)
	if err != nil {
		var stderr string
		if res != nil {
			stderr = res.Stderr
		}
		return "", kxerrors.BuildFailed(-1, stderr, err)
	}
	if res.ExitCode != 0 {
		return "", kxerrors.BuildFailed(res.ExitCode, res.Stderr, nil)
	}

	id, err := ParseImageID(res.Stdout, res.Stderr)
	if err != nil {
		return "", err
	}

	if b.verifier != nil {
		ok, err := b.verifier.ImageExists(ctx, id)
		if err != nil {
			return "", kxerrors.DockerImage(id, err)
		}
		if !ok {
			return "", kxerrors.DockerImage(id, nil)
		}
	}

	util.Info("built image", "id", id)
	return id, nil
}
