// Package main implements the tasklist CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "tasklist",
	Short:         "A small local task list",
	Long:          `tasklist keeps a single list of tasks on disk. Run it without arguments for the interactive view.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default ~/.config/tasklist/config.toml)")
	rootCmd.Flags().StringVar(&tuiDebugLog, "debug-log", "", "append diagnostics to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tasklist:", err)
		os.Exit(1)
	}
}
