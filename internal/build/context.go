package build

import (
	"fmt"
	"path/filepath"
	"strings"

	kxerrors "github.com/griffithind/kitchenx/internal/errors"
	"github.com/griffithind/kitchenx/internal/util"
)

// Context arguments passed to docker build.
const (
	// FullContext sends the working directory as build context.
	FullContext = "."

	// NoContext streams the definition on stdin with no build context.
	NoContext = "-"
)

// ContextArgs are the definition path and context argument for a build.
type ContextArgs struct {
	DefinitionPath string
	Context        string
}

// ResolveContext chooses how the definition file and context are passed.
//
// In full context mode the definition path is made relative to cwd. A
// definition outside cwd yields a path starting with "..", which docker
// accepts only when the file still lies within the context it can read.
// In no-context mode the definition path is returned as given and must be
// absolute.
func ResolveContext(fullContext bool, definitionPath, cwd string) (ContextArgs, error) {
	if !fullContext {
		if !filepath.IsAbs(definitionPath) {
			return ContextArgs{}, kxerrors.PathResolution(definitionPath, cwd,
				fmt.Errorf("definition path is not absolute"))
		}
		return ContextArgs{DefinitionPath: definitionPath, Context: NoContext}, nil
	}

	if !filepath.IsAbs(definitionPath) || !filepath.IsAbs(cwd) {
		return ContextArgs{}, kxerrors.PathResolution(definitionPath, cwd,
			fmt.Errorf("definition path and working directory must be absolute"))
	}

	rel, err := filepath.Rel(cwd, definitionPath)
	if err != nil {
		return ContextArgs{}, kxerrors.PathResolution(definitionPath, cwd, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		util.Debug("build definition is outside the build context", "path", rel, "cwd", cwd)
	}

	return ContextArgs{DefinitionPath: rel, Context: FullContext}, nil
}
