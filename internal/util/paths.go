package util

import (
	"os"
	"path/filepath"
)

// WorkspacePath resolves a configured path against the workspace root.
// Absolute paths are only cleaned.
func WorkspacePath(workspace, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workspace, path)
}

// IsFile reports whether path is a regular file. Config and .env lookups
// treat anything else as absent.
func IsFile(path string) bool {
	info, ok := stat(path)
	return ok && info.Mode().IsRegular()
}

// IsDir reports whether path is a directory. Symlinks are followed, so a
// linked build_tempdir or host_vars directory counts.
func IsDir(path string) bool {
	info, ok := stat(path)
	return ok && info.IsDir()
}

func stat(path string) (os.FileInfo, bool) {
	info, err := os.Stat(path)
	return info, err == nil
}
