package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskdeck/adapter/cli"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/commands"
)

var (
	updateTitle       string
	updateDescription string
	updateStatus      string
	updateDue         string
	clearDue          bool
)

var updateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update a task",
	Long: `Update the properties of an existing task. Only the given flags change.

Examples:
  taskdeck task update abc123 --title "New title"
  taskdeck task update abc123 --status done --due 2024-12-31
  taskdeck task update abc123 --clear-due`,
	Aliases: []string{"edit", "modify"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateTaskHandler == nil {
			return errNotInitialized
		}

		taskID, err := resolveTaskID(app, args[0])
		if err != nil {
			return err
		}

		updateTaskCmd := commands.UpdateTaskCommand{TaskID: taskID}

		// Check if any flags were provided
		flagsProvided := false

		if cmd.Flags().Changed("title") {
			updateTaskCmd.Title = &updateTitle
			flagsProvided = true
		}
		if cmd.Flags().Changed("description") {
			updateTaskCmd.Description = &updateDescription
			flagsProvided = true
		}
		if cmd.Flags().Changed("status") {
			updateTaskCmd.Status = &updateStatus
			flagsProvided = true
		}
		if cmd.Flags().Changed("due") {
			updateTaskCmd.DueDate = &updateDue
			flagsProvided = true
		}
		if clearDue {
			empty := ""
			updateTaskCmd.DueDate = &empty
			flagsProvided = true
		}

		if !flagsProvided {
			return fmt.Errorf("no updates specified, use --title, --description, --status, --due or --clear-due")
		}

		result, err := app.UpdateTaskHandler.Handle(cmd.Context(), updateTaskCmd)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		if !result.Found {
			return fmt.Errorf("task not found: %s", args[0])
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task updated: %s (%s)\n", taskID, strings.Join(result.Fields, ", "))
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new task title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new task description")
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "new status (todo, in-progress, done)")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new due date (YYYY-MM-DD)")
	updateCmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")
	updateCmd.MarkFlagsMutuallyExclusive("due", "clear-due")
}
