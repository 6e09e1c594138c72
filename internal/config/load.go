package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	kxerrors "github.com/griffithind/kitchenx/internal/errors"
	"github.com/griffithind/kitchenx/internal/util"
)

// Environment variables that override file configuration.
const (
	EnvUseCache     = "KITCHENX_USE_CACHE"
	EnvBuildContext = "KITCHENX_BUILD_CONTEXT"
	EnvBuildTempdir = "KITCHENX_BUILD_TEMPDIR"
	EnvDockerBinary = "KITCHENX_DOCKER_BINARY"
	EnvDockerSocket = "KITCHENX_DOCKER_SOCKET"
)

// Load builds the effective configuration for workspace.
//
// A .env file in the workspace is loaded first without overriding variables
// already set. The configuration file is then read from path, or from
// DefaultFile in the workspace when path is empty; a missing default file is
// not an error. Environment overrides are applied last.
func Load(workspace, path string) (*BuildConfig, error) {
	envFile := filepath.Join(workspace, ".env")
	if util.IsFile(envFile) {
		if err := godotenv.Load(envFile); err != nil {
			return nil, kxerrors.ConfigParse(envFile, err)
		}
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(workspace, DefaultFile)
	} else {
		path = util.WorkspacePath(workspace, path)
	}

	cfg := Default()
	if util.IsFile(path) {
		if err := parseFile(path, cfg); err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, kxerrors.ConfigNotFound(path)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration data into cfg. The format is chosen by the
// file extension of name: .json and .jsonc are JSON with comments, anything
// else is YAML.
func Parse(name string, data []byte, cfg *BuildConfig) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc":
		// Strip comments and trailing commas
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return kxerrors.ConfigParse(name, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return kxerrors.ConfigParse(name, err)
		}
	}
	return nil
}

func parseFile(path string, cfg *BuildConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return kxerrors.FileRead(path, err)
	}
	return Parse(path, data, cfg)
}

func applyEnv(cfg *BuildConfig) error {
	for _, b := range []struct {
		key string
		dst **bool
	}{
		{EnvUseCache, &cfg.UseCache},
		{EnvBuildContext, &cfg.BuildContext},
	} {
		raw, set := os.LookupEnv(b.key)
		if !set || raw == "" {
			continue
		}
		v, ok := util.ParseBool(raw)
		if !ok {
			return kxerrors.ConfigValidation(fmt.Sprintf("%s: invalid boolean %q", b.key, raw))
		}
		*b.dst = Bool(v)
	}

	if v := os.Getenv(EnvBuildTempdir); v != "" {
		cfg.BuildTempdir = v
	}
	cfg.Binary = util.GetEnv(EnvDockerBinary, cfg.Binary)
	cfg.Socket = util.GetEnv(EnvDockerSocket, cfg.Socket)
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *BuildConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
