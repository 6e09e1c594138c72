package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/griffithind/kitchenx/internal/build"
	"github.com/griffithind/kitchenx/internal/config"
	"github.com/griffithind/kitchenx/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective build configuration",
	Long: `Print the effective build configuration as YAML.

The configuration file, .env file and KITCHENX_* environment variables are
merged the same way as for build.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(workspacePath, configPath)
	if err != nil {
		return err
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	ui.Result(strings.TrimRight(string(out), "\n"))

	mode := "full (" + build.FullContext + ")"
	if !cfg.FullContext() {
		mode = "none (" + build.NoContext + ")"
	}
	ui.Printf("%s", ui.FormatLabel("Build context", mode))
	ui.Printf("%s", ui.FormatLabel("Layer cache", enabledText(cfg.CacheEnabled())))
	ui.Printf("%s", ui.FormatLabel("Definition dir", build.TargetDir(workspacePath, cfg.BuildTempdir)))
	if len(cfg.BuildOptions) > 0 {
		ui.Printf("%s", ui.FormatLabel("Build options", ui.Code(build.QuotedOptions(cfg.BuildOptions))))
	}
	return nil
}

func enabledText(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
