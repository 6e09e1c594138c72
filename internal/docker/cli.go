// Package docker wraps the Docker CLI and Engine API for image builds.
package docker

import "strings"

// DefaultBinary is the docker CLI used when none is configured.
const DefaultBinary = "docker"

// CLIOptions are the global docker CLI settings applied to every invocation.
// They are embedded in the build configuration, so field tags match the
// configuration file keys.
type CLIOptions struct {
	// Binary is the docker executable (default "docker").
	Binary string `yaml:"binary,omitempty" json:"binary,omitempty"`

	// Socket is the daemon address passed as -H (e.g. unix:///var/run/docker.sock).
	Socket string `yaml:"socket,omitempty" json:"socket,omitempty"`

	// TLS enables --tls.
	TLS bool `yaml:"tls,omitempty" json:"tls,omitempty"`

	// TLSVerify enables --tlsverify.
	TLSVerify bool `yaml:"tls_verify,omitempty" json:"tls_verify,omitempty"`

	TLSCACert string `yaml:"tls_cacert,omitempty" json:"tls_cacert,omitempty"`
	TLSCert   string `yaml:"tls_cert,omitempty" json:"tls_cert,omitempty"`
	TLSKey    string `yaml:"tls_key,omitempty" json:"tls_key,omitempty"`

	// UseSudo runs the docker CLI through "sudo -E".
	UseSudo bool `yaml:"use_sudo,omitempty" json:"use_sudo,omitempty"`
}

// GlobalArgs returns the flags that precede the docker subcommand.
func (o CLIOptions) GlobalArgs() []string {
	var args []string
	if o.Socket != "" {
		args = append(args, "-H", o.Socket)
	}
	if o.TLS {
		args = append(args, "--tls")
	}
	if o.TLSVerify {
		args = append(args, "--tlsverify")
	}
	if o.TLSCACert != "" {
		args = append(args, "--tlscacert="+o.TLSCACert)
	}
	if o.TLSCert != "" {
		args = append(args, "--tlscert="+o.TLSCert)
	}
	if o.TLSKey != "" {
		args = append(args, "--tlskey="+o.TLSKey)
	}
	return args
}

// Command returns the executable and full argument list for running the
// docker subcommand described by args.
func (o CLIOptions) Command(args ...string) (name string, argv []string) {
	binary := o.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	argv = append(argv, o.GlobalArgs()...)
	argv = append(argv, args...)

	if o.UseSudo {
		return "sudo", append([]string{"-E", binary}, argv...)
	}
	return binary, argv
}

// IsRemote reports whether the configured socket points at a TCP daemon.
// A remote daemon cannot see the local filesystem, which changes the
// default build context mode.
func (o CLIOptions) IsRemote() bool {
	return strings.HasPrefix(o.Socket, "tcp://")
}
