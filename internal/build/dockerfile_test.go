package build

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kxerrors "github.com/griffithind/kitchenx/internal/errors"
	"github.com/griffithind/kitchenx/internal/util"
)

const testDefinition = "FROM centos:7\nRUN yum -y install sudo\n"

func TestTargetDir(t *testing.T) {
	assert.Equal(t, "/work", TargetDir("/work", ""))
	assert.Equal(t, filepath.Join("/work", "tmp", "build"), TargetDir("/work", "tmp/build"))
	assert.Equal(t, "/var/tmp", TargetDir("/work", "/var/tmp/"))
}

func TestWriteDefinition(t *testing.T) {
	cwd := t.TempDir()

	def, err := WriteDefinition(cwd, "", testDefinition)
	require.NoError(t, err)
	defer def.Remove()

	assert.Equal(t, cwd, filepath.Dir(def.Path()))
	assert.True(t, strings.HasPrefix(filepath.Base(def.Path()), "Dockerfile-kitchen"))
	assert.Equal(t, testDefinition, def.Content())

	data, err := os.ReadFile(def.Path())
	require.NoError(t, err)
	assert.Equal(t, testDefinition, string(data))
}

func TestWriteDefinitionTempdirWarns(t *testing.T) {
	cwd := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(cwd, "tmp", "build"), 0755))

	var buf bytes.Buffer
	restore := util.SetOutput(&buf)
	defer restore()

	def, err := WriteDefinition(cwd, "tmp/build", testDefinition)
	require.NoError(t, err)
	defer def.Remove()

	assert.Equal(t, filepath.Join(cwd, "tmp", "build"), filepath.Dir(def.Path()))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "build_tempdir=tmp/build")
}

func TestWriteDefinitionNoWarningWithoutTempdir(t *testing.T) {
	var buf bytes.Buffer
	restore := util.SetOutput(&buf)
	defer restore()

	def, err := WriteDefinition(t.TempDir(), "", testDefinition)
	require.NoError(t, err)
	defer def.Remove()

	assert.NotContains(t, buf.String(), "level=WARN")
}

func TestWriteDefinitionUniquePaths(t *testing.T) {
	cwd := t.TempDir()

	a, err := WriteDefinition(cwd, "", testDefinition)
	require.NoError(t, err)
	defer a.Remove()
	b, err := WriteDefinition(cwd, "", testDefinition)
	require.NoError(t, err)
	defer b.Remove()

	assert.NotEqual(t, a.Path(), b.Path())
}

func TestWriteDefinitionMissingTempdir(t *testing.T) {
	cwd := t.TempDir()

	_, err := WriteDefinition(cwd, "does/not/exist", testDefinition)
	require.Error(t, err)
	assert.True(t, kxerrors.Is(err, kxerrors.CodeResourceCreation))

	entries, err := os.ReadDir(cwd)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteDefinitionRelativeCwd(t *testing.T) {
	_, err := WriteDefinition("work", "", testDefinition)
	require.Error(t, err)
	assert.True(t, kxerrors.Is(err, kxerrors.CodeResourceCreation))
}

func TestDefinitionFileRemoveIdempotent(t *testing.T) {
	def, err := WriteDefinition(t.TempDir(), "", testDefinition)
	require.NoError(t, err)

	require.NoError(t, def.Remove())
	assert.NoFileExists(t, def.Path())
	assert.NoError(t, def.Remove())
}

func TestDefinitionFileRemoveAlreadyGone(t *testing.T) {
	def, err := WriteDefinition(t.TempDir(), "", testDefinition)
	require.NoError(t, err)

	require.NoError(t, os.Remove(def.Path()))
	assert.NoError(t, def.Remove())
}
