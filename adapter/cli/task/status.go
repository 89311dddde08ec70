package task

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskdeck/adapter/cli"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/commands"
)

var statusCmd = &cobra.Command{
	Use:   "status [task-id] [status]",
	Short: "Move a task to another status",
	Long: `Change only the status of a task.

Statuses: todo, in-progress, done

Examples:
  taskdeck task status abc123 in-progress
  taskdeck task status abc123 done`,
	Aliases: []string{"move", "mv"},
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
	},
}

var startCmd = &cobra.Command{
	Use:   "start [task-id]",
	Short: "Start working on a task",
	Long: `Mark a task as In Progress.

Examples:
  taskdeck task start abc123`,
	Aliases: []string{"begin", "work"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd.Context(), cmd.OutOrStdout(), args[0], "in-progress")
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Mark a task as done",
	Long: `Mark a task as Done.

Examples:
  taskdeck task complete abc123`,
	Aliases: []string{"done", "finish"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd.Context(), cmd.OutOrStdout(), args[0], "done")
	},
}

func setStatus(ctx context.Context, out io.Writer, idArg, status string) error {
	app := cli.GetApp()
	if app == nil || app.SetStatusHandler == nil {
		return errNotInitialized
	}

	taskID, err := resolveTaskID(app, idArg)
	if err != nil {
		return err
	}

	result, err := app.SetStatusHandler.Handle(ctx, commands.SetStatusCommand{
		TaskID: taskID,
		Status: status,
	})
	if err != nil {
		return fmt.Errorf("failed to change status: %w", err)
	}
	if !result.Found {
		return fmt.Errorf("task not found: %s", idArg)
	}

	fmt.Fprintf(out, "Task %s: %s -> %s\n", shortID(taskID), result.From, result.To)
	return nil
}
