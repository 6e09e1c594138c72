package build

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/griffithind/kitchenx/internal/config"
	"github.com/griffithind/kitchenx/internal/docker"
)

// CommandArgs returns the docker build arguments for cfg, starting with
// "build". It never includes the definition file or context arguments.
func CommandArgs(cfg *config.BuildConfig) []string {
	args := []string{"build"}
	if !cfg.CacheEnabled() {
		args = append(args, "--no-cache")
	}
	return append(args, RenderOptions(cfg.BuildOptions)...)
}

// RenderOptions renders build options as command line flags in key order.
//
// Underscores in keys become dashes. A true value renders a bare flag,
// false and nil render nothing, scalars render as --key=value, and a list
// renders one flag per element.
func RenderOptions(opts config.BuildOptions) []string {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var flags []string
	for _, k := range keys {
		flag := "--" + strings.ReplaceAll(k, "_", "-")
		flags = appendFlag(flags, flag, opts[k])
	}
	return flags
}

func appendFlag(flags []string, flag string, value any) []string {
	switch v := value.(type) {
	case nil:
		return flags
	case bool:
		if v {
			flags = append(flags, flag)
		}
		return flags
	case []any:
		for _, item := range v {
			flags = appendFlag(flags, flag, item)
		}
		return flags
	case []string:
		for _, item := range v {
			flags = append(flags, flag+"="+item)
		}
		return flags
	case string:
		return append(flags, flag+"="+v)
	case int:
		return append(flags, flag+"="+strconv.Itoa(v))
	case int64:
		return append(flags, flag+"="+strconv.FormatInt(v, 10))
	case uint64:
		return append(flags, flag+"="+strconv.FormatUint(v, 10))
	case float64:
		return append(flags, flag+"="+strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return append(flags, fmt.Sprintf("%s=%v", flag, v))
	}
}

// QuotedOptions renders build options as a single shell-quoted string.
func QuotedOptions(opts config.BuildOptions) string {
	return docker.ShellJoin(RenderOptions(opts))
}
