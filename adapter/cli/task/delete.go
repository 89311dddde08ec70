package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskdeck/adapter/cli"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task",
	Long: `Remove a task permanently.

Examples:
  taskdeck task delete abc123`,
	Aliases: []string{"rm", "remove"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteTaskHandler == nil {
			return errNotInitialized
		}

		taskID, err := resolveTaskID(app, args[0])
		if err != nil {
			return err
		}

		result, err := app.DeleteTaskHandler.Handle(cmd.Context(), commands.DeleteTaskCommand{TaskID: taskID})
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		if !result.Found {
			return fmt.Errorf("task not found: %s", args[0])
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task deleted: %s\n", result.Title)
		return nil
	},
}
