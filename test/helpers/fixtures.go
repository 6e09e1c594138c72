package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateWorkspace creates a temporary workspace holding the given files,
// keyed by slash-separated relative path.
func CreateWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// DefinitionFiles returns the temporary build definitions left in dir.
func DefinitionFiles(t *testing.T, dir string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "Dockerfile-kitchen*"))
	require.NoError(t, err)
	return matches
}

// SimpleDockerfile is a definition that builds quickly from a small base.
const SimpleDockerfile = "FROM busybox:latest\nRUN echo kitchenx > /kitchenx\n"
