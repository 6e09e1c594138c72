// Package hostvars locates and loads per-host variable files used by role
// test suites.
package hostvars

import (
	"os"
	"path/filepath"
)

// Directories searched for host vars files, relative to the root.
const (
	PrimaryDir  = "host_vars"
	FallbackDir = "spec/kitchen/playbooks/host_vars"
)

// Resolver finds host vars files beneath a root directory. It holds no
// state beyond the root and does not cache lookups.
type Resolver struct {
	root string
}

// NewResolver creates a resolver for root.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Root returns the directory the resolver searches under.
func (r *Resolver) Root() string {
	return r.root
}

// Candidates returns the paths checked for name, in order.
func (r *Resolver) Candidates(name string) []string {
	return []string{
		filepath.Join(r.root, PrimaryDir, name),
		filepath.Join(r.root, filepath.FromSlash(FallbackDir), name),
	}
}

// Resolve returns the first existing host vars file for name. Absence is
// reported as ok == false, not as an error.
func (r *Resolver) Resolve(name string) (path string, ok bool) {
	if name == "" {
		return "", false
	}
	for _, candidate := range r.Candidates(name) {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
