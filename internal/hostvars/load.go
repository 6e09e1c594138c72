package hostvars

import (
	"os"

	"gopkg.in/yaml.v3"

	kxerrors "github.com/griffithind/kitchenx/internal/errors"
	"github.com/griffithind/kitchenx/internal/util"
)

// Vars are the variables defined in a host vars file.
type Vars map[string]any

// Dig returns the value at the nested key path, or nil if any key along
// the way is missing or not a mapping.
func (v Vars) Dig(keys ...string) any {
	var cur any = v
	for _, k := range keys {
		var next any
		var ok bool
		// yaml.v3 decodes nested mappings into the target's map type
		switch m := cur.(type) {
		case Vars:
			next, ok = m[k]
		case map[string]any:
			next, ok = m[k]
		}
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// String returns the value at the key path if it is a string.
func (v Vars) String(keys ...string) (string, bool) {
	s, ok := v.Dig(keys...).(string)
	return s, ok
}

// Load reads and parses a YAML host vars file. An empty file yields empty
// vars.
func Load(path string) (Vars, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kxerrors.FileRead(path, err)
	}

	vars := Vars{}
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, kxerrors.HostVarsParse(path, err)
	}
	return vars, nil
}

// RunWith resolves name, loads it and calls fn with the result. When no
// file exists fn is not called and ran is false.
func RunWith(r *Resolver, name string, fn func(path string, vars Vars) error) (ran bool, err error) {
	path, ok := r.Resolve(name)
	if !ok {
		util.Debug("no host vars file, skipping", "name", name, "root", r.Root())
		return false, nil
	}

	vars, err := Load(path)
	if err != nil {
		return false, err
	}

	util.Info("using host vars", "file", path)
	return true, fn(path, vars)
}
