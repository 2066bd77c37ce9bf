package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <id-prefix>",
	Short: "Flip a task between pending and completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	s, err := openSession(cliLogger(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.svc.Resolve(args[0])
	if err != nil {
		return err
	}
	saveErr := s.svc.ToggleComplete(id)

	task, err := s.svc.Task(id)
	if err != nil {
		return err
	}
	state := "reopened"
	if task.Completed {
		state = "completed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, task.ID)
	return saveErr
}
