package cli

import (
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/commands"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/queries"
	"github.com/felixgeelhaar/taskdeck/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	// Task Command Handlers
	CreateTaskHandler *commands.CreateTaskHandler
	UpdateTaskHandler *commands.UpdateTaskHandler
	SetStatusHandler  *commands.SetStatusHandler
	DeleteTaskHandler *commands.DeleteTaskHandler

	// Task Query Handlers
	ListTasksHandler *queries.ListTasksHandler
	GetTaskHandler   *queries.GetTaskHandler
	GetStatsHandler  *queries.GetStatsHandler

	// Tasks is the raw task list, used by export.
	Tasks queries.TaskSource

	// Metrics holds the session's activity counters.
	Metrics *observability.InMemoryMetrics
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	createTaskHandler *commands.CreateTaskHandler,
	updateTaskHandler *commands.UpdateTaskHandler,
	setStatusHandler *commands.SetStatusHandler,
	deleteTaskHandler *commands.DeleteTaskHandler,
	listTasksHandler *queries.ListTasksHandler,
	getTaskHandler *queries.GetTaskHandler,
	getStatsHandler *queries.GetStatsHandler,
) *App {
	return &App{
		CreateTaskHandler: createTaskHandler,
		UpdateTaskHandler: updateTaskHandler,
		SetStatusHandler:  setStatusHandler,
		DeleteTaskHandler: deleteTaskHandler,
		ListTasksHandler:  listTasksHandler,
		GetTaskHandler:    getTaskHandler,
		GetStatsHandler:   getStatsHandler,
	}
}

// SetTaskSource updates the task source used by export.
func (a *App) SetTaskSource(source queries.TaskSource) {
	a.Tasks = source
}

// SetMetrics updates the metrics collector.
func (a *App) SetMetrics(metrics *observability.InMemoryMetrics) {
	a.Metrics = metrics
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
