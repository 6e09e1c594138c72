package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/griffithind/kitchenx/internal/hostvars"
	"github.com/griffithind/kitchenx/internal/ui"
)

var hostvarsCmd = &cobra.Command{
	Use:   "hostvars",
	Short: "Locate and inspect host vars files",
	Long: `Locate and inspect host vars files.

Files are looked up in host_vars/ under the workspace first, then in
spec/kitchen/playbooks/host_vars/.`,
}

var hostvarsResolveCmd = &cobra.Command{
	Use:   "resolve NAME",
	Short: "Print the path of a host vars file",
	Long: `Print the path of the host vars file NAME.

Exits with an error when neither directory contains the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runHostvarsResolve,
}

var hostvarsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print the variables defined in a host vars file",
	Long: `Print the variables defined in the host vars file NAME as YAML.

Nothing is printed when the file does not exist.`,
	Args: cobra.ExactArgs(1),
	RunE: runHostvarsShow,
}

func init() {
	hostvarsCmd.AddCommand(hostvarsResolveCmd)
	hostvarsCmd.AddCommand(hostvarsShowCmd)
}

func runHostvarsResolve(cmd *cobra.Command, args []string) error {
	r := hostvars.NewResolver(workspacePath)

	path, ok := r.Resolve(args[0])
	if !ok {
		return fmt.Errorf("no host vars file %q, looked in:\n  %s", args[0], strings.Join(r.Candidates(args[0]), "\n  "))
	}
	ui.Result(path)
	return nil
}

func runHostvarsShow(cmd *cobra.Command, args []string) error {
	ran, err := hostvars.RunWith(hostvars.NewResolver(workspacePath), args[0], func(path string, vars hostvars.Vars) error {
		out, err := yaml.Marshal(vars)
		if err != nil {
			return err
		}
		ui.Info("%s", path)
		ui.Result(strings.TrimRight(string(out), "\n"))
		return nil
	})
	if err != nil {
		return err
	}
	if !ran {
		ui.Warning("No host vars file %s, skipping", args[0])
	}
	return nil
}
