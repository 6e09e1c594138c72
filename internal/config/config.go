// Package config defines the image build configuration and loads it from
// files and the environment.
package config

import (
	"github.com/griffithind/kitchenx/internal/docker"
	kxerrors "github.com/griffithind/kitchenx/internal/errors"
)

// DefaultFile is the configuration file looked up in the workspace when no
// explicit path is given.
const DefaultFile = ".kitchen-build.yml"

// BuildOptions are extra docker build flags keyed by flag name.
// Values may be a string, a bool, a number, or a list of those; see
// build.RenderOptions for how each is rendered.
type BuildOptions map[string]any

// BuildConfig is the configuration for a single image build.
type BuildConfig struct {
	// UseCache, when explicitly false, disables layer caching (--no-cache).
	UseCache *bool `yaml:"use_cache,omitempty" json:"use_cache,omitempty"`

	// BuildOptions are rendered as additional flags to docker build.
	BuildOptions BuildOptions `yaml:"build_options,omitempty" json:"build_options,omitempty"`

	// BuildContext selects full directory context (true) or streamed,
	// context-less builds (false). When unset it defaults to true unless the
	// daemon is remote.
	BuildContext *bool `yaml:"build_context,omitempty" json:"build_context,omitempty"`

	// BuildTempdir is the directory, relative to the working directory, in
	// which the generated Dockerfile is written. Empty means the working
	// directory itself.
	BuildTempdir string `yaml:"build_tempdir,omitempty" json:"build_tempdir,omitempty"`

	// Dockerfile is the file holding the generated build definition.
	Dockerfile string `yaml:"dockerfile,omitempty" json:"dockerfile,omitempty"`

	docker.CLIOptions `yaml:",inline"`
}

// Default returns a configuration with every option at its default.
func Default() *BuildConfig {
	return &BuildConfig{}
}

// CacheEnabled reports whether layer caching is enabled.
func (c *BuildConfig) CacheEnabled() bool {
	return c.UseCache == nil || *c.UseCache
}

// FullContext reports whether the build sends the working directory as
// context (true) or streams the Dockerfile with no context (false).
func (c *BuildConfig) FullContext() bool {
	if c.BuildContext != nil {
		return *c.BuildContext
	}
	return !c.CLIOptions.IsRemote()
}

// Validate checks the configuration for combinations docker would reject.
func (c *BuildConfig) Validate() error {
	tlsFiles := c.TLSCACert != "" || c.TLSCert != "" || c.TLSKey != ""
	if tlsFiles && !c.TLS && !c.TLSVerify {
		return kxerrors.ConfigValidation("tls_cacert, tls_cert and tls_key require tls or tls_verify").
			WithHint("Set tls: true or tls_verify: true")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return kxerrors.ConfigValidation("tls_cert and tls_key must be set together")
	}
	for key := range c.BuildOptions {
		if key == "" {
			return kxerrors.ConfigValidation("build_options contains an empty flag name")
		}
	}
	return nil
}

// Bool returns a pointer to b, for populating optional fields.
func Bool(b bool) *bool {
	return &b
}
