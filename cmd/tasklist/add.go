package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tasklist/app"
	"tasklist/model"
)

var addPriority model.Priority

var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().VarP(newPriorityValue(&addPriority), "priority", "p", "priority ("+joinPriorities()+"), defaults to ui.default-priority")
	setFlagAliases(addCmd.Flags(), priorityFlagAliases)
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(cliLogger(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	priority := addPriority
	if !cmd.Flags().Changed("priority") {
		priority = s.cfg.DefaultPriority()
	}

	task, err := s.svc.Create(strings.Join(args, " "), priority)
	if errors.Is(err, app.ErrValidationFailed) {
		return err
	}
	if task.ID != "" {
		fmt.Fprintln(cmd.OutOrStdout(), task.ID)
	}
	return err
}
