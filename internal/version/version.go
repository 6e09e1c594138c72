// Package version holds build-time version information.
package version

// Version is set at build time with
// -ldflags "-X github.com/griffithind/kitchenx/internal/version.Version=...".
var Version = "dev"
