package task

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskdeck/adapter/cli"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/queries"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/domain/task"
)

var (
	status   string
	dateView string
	listJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks in the order they were created.

Filter Options:
  --status  Filter by status (all, todo, in-progress, done)
  --date    Filter by due date (all, overdue, today, upcoming)

Examples:
  taskdeck task list                   # All tasks
  taskdeck task list --status done     # Only finished tasks
  taskdeck task list --date overdue    # Past due, any status
  taskdeck task list --date upcoming --json`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return errNotInitialized
		}

		result, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			Status: status,
			Date:   dateView,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		if msg := result.EmptyMessage(); msg != "" {
			fmt.Fprintln(out, msg)
			return nil
		}

		fmt.Fprintf(out, "Tasks (%d):\n", result.Matched)
		fmt.Fprintln(out, strings.Repeat("-", 60))

		for _, t := range result.Tasks {
			fmt.Fprintf(out, "%s %s%s\n", getStatusIcon(t.Status), t.Title, getDueMarker(t.Badge))
			fmt.Fprintf(out, "   ID: %s\n", shortID(t.ID))
			if t.DueDate != "" {
				fmt.Fprintf(out, "   Due: %s\n", t.DueDate)
			}
			fmt.Fprintln(out)
		}

		if !result.Filter.IsAll() {
			fmt.Fprintln(out, result.Summary())
		}
		return nil
	},
}

func getStatusIcon(s string) string {
	switch s {
	case task.StatusDone.String():
		return "(x)"
	case task.StatusInProgress.String():
		return "(~)"
	default:
		return "( )"
	}
}

func getDueMarker(b queries.DueBadge) string {
	if b == queries.BadgeNone {
		return ""
	}
	return " • " + b.Label()
}

func init() {
	listCmd.Flags().StringVarP(&status, "status", "s", "all", "filter by status (all, todo, in-progress, done)")
	listCmd.Flags().StringVarP(&dateView, "date", "d", "all", "filter by due date (all, overdue, today, upcoming)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the result as JSON")
}
