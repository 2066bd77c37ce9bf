package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var rmYes bool

var rmCmd = &cobra.Command{
	Use:     "rm <id-prefix>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	s, err := openSession(cliLogger(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.svc.Resolve(args[0])
	if err != nil {
		return err
	}
	task, err := s.svc.Task(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !rmYes {
		ok, err := confirm(cmd.InOrStdin(), out, fmt.Sprintf("Are you sure you want to delete %q? [y/N] ", task.Text))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "cancelled")
			return nil
		}
	}

	if err := s.svc.Delete(id); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %s\n", id)
	return nil
}

// confirm writes prompt and reports whether the answer is yes. End of input
// counts as no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	if err == io.EOF {
		fmt.Fprintln(out)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
