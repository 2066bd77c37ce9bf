package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tasklist/model"
)

var listFilter = model.FilterAll

var (
	listSearch string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks, newest first",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().Var(newFilterValue(&listFilter), "filter", "status filter ("+joinFilters()+")")
	listCmd.Flags().StringVar(&listSearch, "search", "", "case-insensitive text search")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cliLogger(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.svc.SetFilter(listFilter); err != nil {
		return err
	}
	s.svc.SetSearch(listSearch)
	projection := s.svc.View()
	out := cmd.OutOrStdout()

	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(projection.Tasks)
	}

	if projection.Empty {
		fmt.Fprintln(out, projection.EmptyState.Message())
		return nil
	}

	fmt.Fprint(out, formatTaskTable(projection.Tasks, idHighlighter(s.svc.PrefixLengths())))
	fmt.Fprintf(out, "\n%s\n", formatStats(projection.Stats))
	return nil
}

func formatStats(stats model.Stats) string {
	return fmt.Sprintf("%d total, %d completed, %d pending", stats.Total, stats.Completed, stats.Pending)
}
