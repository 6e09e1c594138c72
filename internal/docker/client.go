package docker

import (
	"context"
	"fmt"
	"net/http"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/tlsconfig"
)

// Client wraps the Docker Engine API client. It is used to check the daemon
// and to confirm that built images exist; builds themselves go through the CLI.
type Client struct {
	cli *client.Client
}

// NewClient creates a Docker client honoring the socket and TLS settings
// used for the CLI.
func NewClient(opts CLIOptions) (*Client, error) {
	clientOpts := []client.Opt{
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	}

	if opts.TLS || opts.TLSVerify {
		tlsCfg, err := tlsconfig.Client(tlsconfig.Options{
			CAFile:             opts.TLSCACert,
			CertFile:           opts.TLSCert,
			KeyFile:            opts.TLSKey,
			InsecureSkipVerify: !opts.TLSVerify,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load Docker TLS configuration: %w", err)
		}
		clientOpts = append(clientOpts, client.WithHTTPClient(&http.Client{
			Transport: &http.Transport{TLSClientConfig: tlsCfg},
		}))
	}

	// WithHost must follow WithHTTPClient so the transport is configured
	// for the scheme of the configured socket.
	if opts.Socket != "" {
		clientOpts = append(clientOpts, client.WithHost(opts.Socket))
	}

	cli, err := client.NewClientWithOpts(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return &Client{cli: cli}, nil
}

// Close closes the Docker client.
func (c *Client) Close() error {
	return c.cli.Close()
}

// Ping checks if the Docker daemon is accessible.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.cli.Ping(ctx)
	return err
}

// ServerVersion returns the Docker server version.
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	version, err := c.cli.ServerVersion(ctx)
	if err != nil {
		return "", err
	}
	return version.Version, nil
}

// ImageExists checks if an image exists locally.
func (c *Client) ImageExists(ctx context.Context, imageRef string) (bool, error) {
	_, _, err := c.cli.ImageInspectWithRaw(ctx, imageRef)
	if err != nil {
		if client.IsErrNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
