package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kxerrors "github.com/griffithind/kitchenx/internal/errors"
)

func TestBuildConfigDefaults(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.CacheEnabled())
	assert.True(t, cfg.FullContext())
	assert.Empty(t, cfg.BuildTempdir)
	assert.NoError(t, cfg.Validate())
}

func TestFullContext(t *testing.T) {
	tests := []struct {
		name     string
		context  *bool
		socket   string
		expected bool
	}{
		{"unset local", nil, "", true},
		{"unset unix socket", nil, "unix:///var/run/docker.sock", true},
		{"unset remote", nil, "tcp://10.0.0.5:2376", false},
		{"explicit true remote", Bool(true), "tcp://10.0.0.5:2376", true},
		{"explicit false", Bool(false), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.BuildContext = tt.context
			cfg.Socket = tt.socket
			assert.Equal(t, tt.expected, cfg.FullContext())
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*BuildConfig)
		wantErr bool
	}{
		{"tls files without tls", func(c *BuildConfig) { c.TLSCACert = "ca.pem" }, true},
		{"tls files with tls_verify", func(c *BuildConfig) {
			c.TLSVerify = true
			c.TLSCACert = "ca.pem"
		}, false},
		{"cert without key", func(c *BuildConfig) {
			c.TLS = true
			c.TLSCert = "cert.pem"
		}, true},
		{"empty option key", func(c *BuildConfig) {
			c.BuildOptions = BuildOptions{"": "x"}
		}, true},
		{"absolute tempdir", func(c *BuildConfig) { c.BuildTempdir = "/var/tmp/kitchen" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, kxerrors.Is(err, kxerrors.CodeConfigValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
use_cache: false
build_context: false
build_tempdir: tmp/build
build_options:
  build_arg:
    - HTTP_PROXY=http://proxy:3128
    - RELEASE=9
  pull: true
  label: env=test
binary: podman
socket: tcp://192.168.1.10:2376
tls_verify: true
tls_cacert: /certs/ca.pem
use_sudo: true
`)
	cfg := Default()
	require.NoError(t, Parse("kitchen.yml", data, cfg))

	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.FullContext())
	assert.Equal(t, "tmp/build", cfg.BuildTempdir)
	assert.Equal(t, "podman", cfg.Binary)
	assert.Equal(t, "tcp://192.168.1.10:2376", cfg.Socket)
	assert.True(t, cfg.TLSVerify)
	assert.Equal(t, "/certs/ca.pem", cfg.TLSCACert)
	assert.True(t, cfg.UseSudo)
	assert.Equal(t, true, cfg.BuildOptions["pull"])
	assert.Equal(t, "env=test", cfg.BuildOptions["label"])
	assert.Len(t, cfg.BuildOptions["build_arg"], 2)
}

func TestParseJSONC(t *testing.T) {
	data := []byte(`{
  // build without cache
  "use_cache": false,
  "build_options": {"rm": true, "network": "host",},
  "binary": "docker",
}`)
	cfg := Default()
	require.NoError(t, Parse("kitchen.jsonc", data, cfg))

	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, "host", cfg.BuildOptions["network"])
	assert.Equal(t, true, cfg.BuildOptions["rm"])
}

func TestParseInvalid(t *testing.T) {
	cfg := Default()
	err := Parse("kitchen.yml", []byte("use_cache: [unterminated"), cfg)
	require.Error(t, err)
	assert.True(t, kxerrors.Is(err, kxerrors.CodeConfigParse))
}

func TestLoadMissingDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.True(t, cfg.CacheEnabled())
}

func TestLoadMissingExplicit(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir, "nope.yml")
	require.Error(t, err)
	assert.True(t, kxerrors.Is(err, kxerrors.CodeConfigNotFound))
}

func TestLoadDefaultFile(t *testing.T) {
	dir := t.TempDir()
	content := "build_tempdir: tmp\nbuild_options:\n  pull: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(content), 0644))

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "tmp", cfg.BuildTempdir)
	assert.Equal(t, true, cfg.BuildOptions["pull"])
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("use_cache: true\nbinary: docker\n"), 0644))

	t.Setenv(EnvUseCache, "no")
	t.Setenv(EnvBuildContext, "false")
	t.Setenv(EnvBuildTempdir, "scratch")
	t.Setenv(EnvDockerBinary, "/usr/local/bin/docker")
	t.Setenv(EnvDockerSocket, "unix:///run/user/1000/docker.sock")

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.FullContext())
	assert.Equal(t, "scratch", cfg.BuildTempdir)
	assert.Equal(t, "/usr/local/bin/docker", cfg.Binary)
	assert.Equal(t, "unix:///run/user/1000/docker.sock", cfg.Socket)
}

func TestLoadInvalidEnvBool(t *testing.T) {
	t.Setenv(EnvUseCache, "maybe")

	_, err := Load(t.TempDir(), "")
	require.Error(t, err)
	assert.True(t, kxerrors.Is(err, kxerrors.CodeConfigValidation))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvBuildTempdir+"=from-dotenv\n"), 0644))

	// Registers cleanup so the variable set by godotenv is unset afterwards.
	t.Setenv(EnvBuildTempdir, "")
	require.NoError(t, os.Unsetenv(EnvBuildTempdir))

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.BuildTempdir)
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvBuildTempdir+"=from-dotenv\n"), 0644))
	t.Setenv(EnvBuildTempdir, "from-shell")

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "from-shell", cfg.BuildTempdir)
}

func TestMarshal(t *testing.T) {
	cfg := Default()
	cfg.UseCache = Bool(false)
	cfg.Binary = "docker"

	out, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "use_cache: false")
	assert.Contains(t, string(out), "binary: docker")
}
