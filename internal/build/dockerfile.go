package build

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	kxerrors "github.com/griffithind/kitchenx/internal/errors"
	"github.com/griffithind/kitchenx/internal/util"
)

// definitionPattern is the os.CreateTemp pattern for definition files.
const definitionPattern = "Dockerfile-kitchen*"

// DefinitionFile is a build definition materialized on disk for the
// duration of one build.
type DefinitionFile struct {
	path    string
	content string
	removed bool
}

// Path returns the absolute path of the file.
func (d *DefinitionFile) Path() string {
	return d.path
}

// Content returns the text written to the file.
func (d *DefinitionFile) Content() string {
	return d.content
}

// Remove deletes the file. It is safe to call more than once.
func (d *DefinitionFile) Remove() error {
	if d.removed {
		return nil
	}
	if err := os.Remove(d.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", d.path, err)
	}
	d.removed = true
	return nil
}

// TargetDir returns the directory definition files are written to: cwd, or
// tempdir resolved against cwd. An absolute tempdir is used as is.
func TargetDir(cwd, tempdir string) string {
	if tempdir == "" {
		return cwd
	}
	return util.WorkspacePath(cwd, tempdir)
}

// WriteDefinition writes content to a new uniquely named file in the
// target directory. The file is closed on return; the caller owns removal.
func WriteDefinition(cwd, tempdir, content string) (*DefinitionFile, error) {
	if !filepath.IsAbs(cwd) {
		return nil, kxerrors.ResourceCreation(cwd, fmt.Errorf("working directory %q is not absolute", cwd))
	}

	dir := TargetDir(cwd, tempdir)
	if tempdir != "" {
		util.Warn("build_tempdir is set, the build definition is written outside the working directory root",
			"build_tempdir", tempdir, "dir", dir)
	}

	f, err := os.CreateTemp(dir, definitionPattern)
	if err != nil {
		return nil, kxerrors.ResourceCreation(dir, err)
	}

	def := &DefinitionFile{path: f.Name(), content: content}

	_, err = f.WriteString(content)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := def.Remove(); rerr != nil {
			util.Warn("failed to remove partial build definition", "path", def.path, "error", rerr)
		}
		return nil, kxerrors.ResourceCreation(dir, err)
	}

	util.Debug("wrote build definition", "path", def.path, "bytes", len(content))
	return def, nil
}
