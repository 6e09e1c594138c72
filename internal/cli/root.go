// Package cli implements the command-line interface for kitchenx.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	kxerrors "github.com/griffithind/kitchenx/internal/errors"
	"github.com/griffithind/kitchenx/internal/ui"
	"github.com/griffithind/kitchenx/internal/util"
	"github.com/griffithind/kitchenx/internal/version"
)

// Global flags
var (
	workspacePath string
	configPath    string
	noColor       bool
	quiet         bool
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kitchenx",
	Short: "Build role test images and resolve host vars",
	Long: `kitchenx builds the container images used as disposable test
environments for infrastructure roles, and locates the host vars files
that parameterize their test suites.

Builds write the generated Dockerfile to a uniquely named temporary file,
run docker build with either the workspace as context or the Dockerfile
streamed on stdin, and always remove the temporary file afterwards.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if workspacePath == "" {
			var err error
			workspacePath, err = os.Getwd()
			if err != nil {
				return kxerrors.Internal("failed to get current directory", err)
			}
		}
		abs, err := filepath.Abs(workspacePath)
		if err != nil {
			return fmt.Errorf("failed to resolve workspace %s: %w", workspacePath, err)
		}
		workspacePath = abs

		if quiet {
			util.SetQuiet()
		} else {
			util.SetVerbose(verbose)
		}
		return nil
	},
}

// Execute runs the root command and prints any error it returns.
// This is called by main.main().
func Execute() error {
	// Parse flags early so --no-color and --quiet apply even to usage errors.
	_ = rootCmd.ParseFlags(os.Args[1:])
	initUI()

	err := rootCmd.Execute()
	if err != nil {
		ui.PrintError(err)
	}
	return err
}

// initUI configures the UI system based on parsed flags.
func initUI() {
	verbosity := ui.VerbosityNormal
	if quiet {
		verbosity = ui.VerbosityQuiet
	} else if verbose {
		verbosity = ui.VerbosityVerbose
	}

	ui.Configure(ui.Config{
		Verbosity: verbosity,
		NoColor:   noColor,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	})
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspacePath, "workspace", "w", "", "workspace directory (default: current directory)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to build configuration (default: .kitchen-build.yml in the workspace)")

	// Output flags
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetOut(ui.CobraOutWriter{})
	rootCmd.SetErr(ui.CobraErrWriter{})

	rootCmd.AddGroup(&cobra.Group{ID: "build", Title: "Build Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "info", Title: "Information Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "utilities", Title: "Utilities:"})

	buildCmd.GroupID = "build"
	rootCmd.AddCommand(buildCmd)

	hostvarsCmd.GroupID = "info"
	configCmd.GroupID = "info"
	rootCmd.AddCommand(hostvarsCmd)
	rootCmd.AddCommand(configCmd)

	doctorCmd.GroupID = "utilities"
	rootCmd.AddCommand(doctorCmd)
}
