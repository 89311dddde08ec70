package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskdeck/adapter/cli"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/commands"
)

var (
	description  string
	dueDate      string
	createStatus string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Long: `Create a new task with a title and optional properties. New tasks are
appended to the end of the list.

Examples:
  taskdeck task create "Complete project report"
  taskdeck task create "Review PR" --due 2024-12-31
  taskdeck task create "Write docs" --description "API section" --status in-progress`,
	Aliases: []string{"add", "new"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return errNotInitialized
		}

		createTaskCmd := commands.CreateTaskCommand{
			Title:       args[0],
			Description: description,
			Status:      createStatus,
			DueDate:     dueDate,
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), createTaskCmd)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task created: %s\n", result.TaskID)
		fmt.Fprintf(out, "  title: %s\n", args[0])
		if dueDate != "" {
			fmt.Fprintf(out, "  due: %s\n", dueDate)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&description, "description", "", "task description")
	createCmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	createCmd.Flags().StringVarP(&createStatus, "status", "s", "", "initial status (todo, in-progress, done)")
}
