package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/taskdeck/adapter/cli"
	"github.com/felixgeelhaar/taskdeck/adapter/cli/mcp"
	"github.com/felixgeelhaar/taskdeck/adapter/cli/task"
	"github.com/felixgeelhaar/taskdeck/internal/app"
	"github.com/felixgeelhaar/taskdeck/pkg/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		return 1
	}

	logger := app.NewLogger(cfg, cli.Version)
	cli.SetLogger(logger)

	// Open storage and hydrate the task list
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		return 1
	}
	defer container.Close()

	// Create CLI app with handlers
	cliApp := cli.NewApp(
		container.CreateTaskHandler,
		container.UpdateTaskHandler,
		container.SetStatusHandler,
		container.DeleteTaskHandler,
		container.ListTasksHandler,
		container.GetTaskHandler,
		container.GetStatsHandler,
	)
	cliApp.SetTaskSource(container.Store)
	cliApp.SetMetrics(container.Metrics)

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(task.Cmd)
	cli.AddCommand(mcp.Cmd)

	// Execute CLI
	if err := cli.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
