package build

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kxerrors "github.com/griffithind/kitchenx/internal/errors"
)

func TestResolveContextFull(t *testing.T) {
	tests := []struct {
		name     string
		defPath  string
		cwd      string
		expected string
	}{
		{"in cwd", "/work/Dockerfile-kitchen1", "/work", "Dockerfile-kitchen1"},
		{"in tempdir", "/work/tmp/build/Dockerfile-kitchen1", "/work", filepath.Join("tmp", "build", "Dockerfile-kitchen1")},
		{"outside cwd", "/var/tmp/Dockerfile-kitchen1", "/work", filepath.Join("..", "var", "tmp", "Dockerfile-kitchen1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := ResolveContext(true, tt.defPath, tt.cwd)
			require.NoError(t, err)
			assert.Equal(t, FullContext, args.Context)
			assert.Equal(t, tt.expected, args.DefinitionPath)
			assert.False(t, filepath.IsAbs(args.DefinitionPath))
			assert.Equal(t, tt.defPath, filepath.Join(tt.cwd, args.DefinitionPath))
		})
	}
}

func TestResolveContextNone(t *testing.T) {
	args, err := ResolveContext(false, "/work/tmp/Dockerfile-kitchen1", "/work")
	require.NoError(t, err)
	assert.Equal(t, NoContext, args.Context)
	assert.Equal(t, "/work/tmp/Dockerfile-kitchen1", args.DefinitionPath)
}

func TestResolveContextErrors(t *testing.T) {
	tests := []struct {
		name    string
		full    bool
		defPath string
		cwd     string
	}{
		{"relative cwd", true, "/work/Dockerfile-kitchen1", "work"},
		{"relative definition", true, "Dockerfile-kitchen1", "/work"},
		{"relative definition without context", false, "Dockerfile-kitchen1", "/work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveContext(tt.full, tt.defPath, tt.cwd)
			require.Error(t, err)
			assert.True(t, kxerrors.Is(err, kxerrors.CodePathResolution))
		})
	}
}
