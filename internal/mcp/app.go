package mcp

import (
	"github.com/felixgeelhaar/taskdeck/adapter/cli"
	"github.com/felixgeelhaar/taskdeck/internal/app"
)

// NewCLIApp creates a CLI application instance backed by the provided container.
func NewCLIApp(container *app.Container) *cli.App {
	cliApp := cli.NewApp(
		container.CreateTaskHandler,
		container.UpdateTaskHandler,
		container.SetStatusHandler,
		container.DeleteTaskHandler,
		container.ListTasksHandler,
		container.GetTaskHandler,
		container.GetStatsHandler,
	)

	if container.Store != nil {
		cliApp.SetTaskSource(container.Store)
	}
	if container.Metrics != nil {
		cliApp.SetMetrics(container.Metrics)
	}

	return cliApp
}
