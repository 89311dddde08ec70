package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/infrastructure/persistence"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as JSON",
	Long: `Print the task list in the same JSON shape that is persisted, so it can
be imported by another taskdeck installation or inspected by hand.

Examples:
  taskdeck export                 # Export to stdout
  taskdeck export -o tasks.json   # Export to file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Tasks == nil {
			return errors.New("application not initialized")
		}

		tasks := app.Tasks.Tasks()
		data, err := persistence.EncodeIndent(tasks)
		if err != nil {
			return fmt.Errorf("failed to encode tasks: %w", err)
		}
		data = append(data, '\n')

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", len(tasks), exportOutput)
			return nil
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
