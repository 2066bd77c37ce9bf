package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"tasklist/tui"
)

var tuiDebugLog string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task list",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiDebugLog, "debug-log", "", "append diagnostics to this file")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Anything written to the terminal would tear the frame.
	logger := log.New(io.Discard, "", 0)
	if tuiDebugLog != "" {
		f, err := os.OpenFile(tuiDebugLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logger = log.New(f, "tasklist: ", log.LstdFlags)
	}

	s, err := openSession(logger)
	if err != nil {
		return err
	}
	defer s.Close()

	return tui.Run(s.svc, tui.Options{
		NoticeDuration:  s.cfg.NoticeDuration(),
		DefaultPriority: s.cfg.DefaultPriority(),
	})
}

func cliLogger(cmd *cobra.Command) *log.Logger {
	return log.New(cmd.ErrOrStderr(), "tasklist: ", 0)
}
