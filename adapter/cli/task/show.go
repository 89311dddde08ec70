package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskdeck/adapter/cli"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/queries"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show task details",
	Long: `Display detailed information about a specific task.

Examples:
  taskdeck task show abc123
  taskdeck task show 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"get", "view"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetTaskHandler == nil {
			return errNotInitialized
		}

		taskID, err := resolveTaskID(app, args[0])
		if err != nil {
			return err
		}

		result, err := app.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{TaskID: taskID})
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}
		if !result.Found {
			return fmt.Errorf("task not found: %s", args[0])
		}

		t := result.Task
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task: %s\n", t.ID)
		fmt.Fprintf(out, "  Title:       %s\n", t.Title)
		fmt.Fprintf(out, "  Status:      %s %s\n", getStatusIcon(t.Status), t.Status)

		if t.Description != "" {
			fmt.Fprintf(out, "  Description: %s\n", t.Description)
		}
		if t.DueDate != "" {
			fmt.Fprintf(out, "  Due:         %s%s\n", t.DueDate, getDueMarker(t.Badge))
		}

		fmt.Fprintf(out, "  Created:     %s\n", t.CreatedAt)
		return nil
	},
}
