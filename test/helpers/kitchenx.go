// Package helpers provides shared test utilities for kitchenx E2E tests.
package helpers

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TestLabel marks images built by E2E tests so they can be removed.
const TestLabel = "kitchenx-e2e-test"

var (
	binaryPath string
	binaryOnce sync.Once
)

// RunKitchenx runs the kitchenx CLI in dir and returns stdout, stderr,
// and any error.
func RunKitchenx(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, GetBinary(t), args...)
	cmd.Dir = dir
	// Keep the developer's own configuration out of the run.
	cmd.Env = filteredEnv("KITCHENX_")

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// RunKitchenxSuccess runs kitchenx in dir and fails the test on error.
func RunKitchenxSuccess(t *testing.T, dir string, args ...string) string {
	t.Helper()

	stdout, stderr, err := RunKitchenx(t, dir, args...)
	require.NoError(t, err, "kitchenx %v failed\nstdout: %s\nstderr: %s", args, stdout, stderr)
	return stdout
}

// GetBinary returns the path to the kitchenx binary, building it once.
func GetBinary(t *testing.T) string {
	t.Helper()

	binaryOnce.Do(func() {
		root := GetProjectRoot(t)
		path := filepath.Join(root, "bin", "kitchenx")

		t.Logf("Building kitchenx binary...")
		build := exec.Command("go", "build", "-o", path, "./cmd/kitchenx")
		build.Dir = root
		output, err := build.CombinedOutput()
		if err != nil {
			t.Fatalf("failed to build kitchenx: %v\noutput: %s", err, output)
		}
		binaryPath = path
	})

	if binaryPath == "" {
		t.Fatal("kitchenx binary path not set")
	}
	return binaryPath
}

// GetProjectRoot returns the module root directory.
func GetProjectRoot(t *testing.T) string {
	t.Helper()

	cmd := exec.Command("go", "list", "-m", "-f", "{{.Dir}}")
	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("failed to find project root: %v", err)
	}
	return strings.TrimSpace(string(output))
}

// RequireDockerAvailable skips the test when no Docker daemon answers.
func RequireDockerAvailable(t *testing.T) {
	t.Helper()

	if err := exec.Command("docker", "info").Run(); err != nil {
		t.Skip("Docker is not available, skipping E2E test")
	}
}

// RemoveImage deletes an image built by a test, ignoring failures.
func RemoveImage(t *testing.T, id string) {
	t.Helper()
	if id == "" {
		return
	}
	if out, err := exec.Command("docker", "image", "rm", "-f", id).CombinedOutput(); err != nil {
		t.Logf("failed to remove image %s: %v: %s", id, err, out)
	}
}

// StripANSI removes ANSI escape sequences from s.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func filteredEnv(prefix string) []string {
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, prefix) {
			env = append(env, kv)
		}
	}
	return env
}
