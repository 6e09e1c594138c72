// Package main provides the entry point for the kitchenx CLI.
package main

import (
	"os"

	"github.com/griffithind/kitchenx/internal/cli"
	"github.com/griffithind/kitchenx/internal/ui"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(ui.ExitCode(err))
	}
}
