package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskdeck/adapter/cli"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Create, list, update, move and delete your tasks.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(statusCmd)
	Cmd.AddCommand(startCmd)
	Cmd.AddCommand(completeCmd)
	Cmd.AddCommand(deleteCmd)
}

var errNotInitialized = errors.New("application not initialized")

// resolveTaskID accepts a full id or a unique prefix of one, as shown by
// task list.
func resolveTaskID(app *cli.App, arg string) (string, error) {
	if app.Tasks == nil {
		return arg, nil
	}

	prefix := strings.ToLower(strings.TrimSpace(arg))
	if prefix == "" {
		return "", errors.New("task id is required")
	}

	var matches []string
	for _, t := range app.Tasks.Tasks() {
		id := strings.ToLower(t.ID)
		if id == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %s", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task id %q is ambiguous (%d matches)", arg, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
