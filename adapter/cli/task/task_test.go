package task

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskdeck/adapter/cli"
	internalApp "github.com/felixgeelhaar/taskdeck/internal/app"
	"github.com/felixgeelhaar/taskdeck/internal/shared/infrastructure/kv"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/queries"
	"github.com/felixgeelhaar/taskdeck/pkg/config"
	"github.com/felixgeelhaar/taskdeck/pkg/observability"
)

// 2024-05-10 14:00 UTC
var testNow = time.Date(2024, time.May, 10, 14, 0, 0, 0, time.UTC)

func setupTestApp(t *testing.T) *cli.App {
	t.Helper()

	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("%08d-0000-4000-8000-000000000000", n)
	}

	cfg := &config.Config{AppEnv: "test", Storage: "memory", StorageKey: "tasks", BreakerMaxFailures: 1}
	container, err := internalApp.NewContainer(context.Background(), cfg, observability.NopLogger(),
		internalApp.WithStorage(kv.NewMemoryStorage()),
		internalApp.WithClock(func() time.Time { return testNow }),
		internalApp.WithIDGenerator(newID),
	)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := cli.NewApp(
		container.CreateTaskHandler,
		container.UpdateTaskHandler,
		container.SetStatusHandler,
		container.DeleteTaskHandler,
		container.ListTasksHandler,
		container.GetTaskHandler,
		container.GetStatsHandler,
	)
	app.SetTaskSource(container.Store)
	app.SetMetrics(container.Metrics)

	cli.SetApp(app)
	t.Cleanup(func() { cli.SetApp(nil) })

	resetFlags()
	return app
}

func resetFlags() {
	description, dueDate, createStatus = "", "", ""
	status, dateView, listJSON = "all", "all", false
	updateTitle, updateDescription, updateStatus, updateDue, clearDue = "", "", "", "", false
	updateCmd.Flags().Visit(func(f *pflag.Flag) { f.Changed = false })
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	err := cmd.RunE(cmd, args)
	return out.String(), err
}

func mustCreate(t *testing.T, title string, opts ...func()) {
	t.Helper()
	description, dueDate, createStatus = "", "", ""
	for _, opt := range opts {
		opt()
	}
	_, err := run(t, createCmd, title)
	require.NoError(t, err)
}

func listAll(t *testing.T, app *cli.App) []queries.TaskDTO {
	t.Helper()
	result, err := app.ListTasksHandler.Handle(context.Background(), queries.ListTasksQuery{})
	require.NoError(t, err)
	return result.Tasks
}

func TestCreateCmd_CreatesTask(t *testing.T) {
	app := setupTestApp(t)

	description = "Quarterly numbers"
	dueDate = "2024-05-20"
	out, err := run(t, createCmd, "Write report")
	require.NoError(t, err)
	assert.Contains(t, out, "Task created: 00000001-0000-4000-8000-000000000000")

	tasks := listAll(t, app)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0].Title)
	assert.Equal(t, "Quarterly numbers", tasks[0].Description)
	assert.Equal(t, "To Do", tasks[0].Status)
	assert.Equal(t, "2024-05-20", tasks[0].DueDate)
}

func TestCreateCmd_Errors(t *testing.T) {
	app := setupTestApp(t)

	t.Run("invalid due date", func(t *testing.T) {
		dueDate = "invalid-date"
		defer func() { dueDate = "" }()
		_, err := run(t, createCmd, "Task with bad date")
		assert.Error(t, err)
	})

	t.Run("blank title", func(t *testing.T) {
		_, err := run(t, createCmd, "   ")
		assert.Error(t, err)
	})

	t.Run("invalid status", func(t *testing.T) {
		createStatus = "blocked"
		defer func() { createStatus = "" }()
		_, err := run(t, createCmd, "Task")
		assert.Error(t, err)
	})

	assert.Empty(t, listAll(t, app))
}

func TestListCmd(t *testing.T) {
	setupTestApp(t)

	mustCreate(t, "Late", func() { dueDate = "2024-05-01" })
	mustCreate(t, "Now", func() { dueDate = "2024-05-10"; createStatus = "in-progress" })
	mustCreate(t, "Finished", func() { createStatus = "done" })

	t.Run("all tasks in order", func(t *testing.T) {
		status, dateView = "all", "all"
		out, err := run(t, listCmd)
		require.NoError(t, err)

		assert.Contains(t, out, "Tasks (3):")
		assert.Contains(t, out, "( ) Late • Overdue")
		assert.Contains(t, out, "(~) Now • Overdue • Today")
		assert.Contains(t, out, "(x) Finished\n")
		assert.Contains(t, out, "   ID: 00000001")
		assert.Less(t, bytes.Index([]byte(out), []byte("Late")), bytes.Index([]byte(out), []byte("Finished")))
		assert.NotContains(t, out, "Showing")
	})

	t.Run("filtered shows summary", func(t *testing.T) {
		status, dateView = "all", "overdue"
		defer func() { dateView = "all" }()
		out, err := run(t, listCmd)
		require.NoError(t, err)

		// due today counts as past due once the day has begun
		assert.Contains(t, out, "Late")
		assert.Contains(t, out, "Now")
		assert.NotContains(t, out, "Finished")
		assert.Contains(t, out, "Showing 2 of 3 tasks")
	})

	t.Run("no matches", func(t *testing.T) {
		status, dateView = "done", "today"
		defer func() { status, dateView = "all", "all" }()
		out, err := run(t, listCmd)
		require.NoError(t, err)
		assert.Equal(t, "No tasks match your filters\n", out)
	})

	t.Run("invalid filter", func(t *testing.T) {
		status = "blocked"
		defer func() { status = "all" }()
		_, err := run(t, listCmd)
		assert.ErrorIs(t, err, queries.ErrInvalidFilter)
	})

	t.Run("json", func(t *testing.T) {
		listJSON = true
		defer func() { listJSON = false }()
		out, err := run(t, listCmd)
		require.NoError(t, err)
		assert.Contains(t, out, `"badge": "overdue"`)
		assert.Contains(t, out, `"total": 3`)
	})
}

func TestListCmd_OverdueIncludesDone(t *testing.T) {
	setupTestApp(t)

	mustCreate(t, "Shipped late", func() { dueDate = "2024-05-01"; createStatus = "done" })
	mustCreate(t, "Someday", func() { dueDate = "2024-06-01" })

	status, dateView = "all", "overdue"
	defer func() { dateView = "all" }()
	out, err := run(t, listCmd)
	require.NoError(t, err)

	assert.Contains(t, out, "(x) Shipped late • Overdue")
	assert.NotContains(t, out, "Someday")
	assert.Contains(t, listCmd.Long, "--date overdue    # Past due, any status")
}

func TestListCmd_EmptyList(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, listCmd)
	require.NoError(t, err)
	assert.Equal(t, "No tasks yet\n", out)
}

func TestStatusCmds(t *testing.T) {
	app := setupTestApp(t)
	mustCreate(t, "Task to move")

	out, err := run(t, startCmd, "00000001")
	require.NoError(t, err)
	assert.Equal(t, "Task 00000001: To Do -> In Progress\n", out)

	_, err = run(t, completeCmd, "00000001")
	require.NoError(t, err)
	assert.Equal(t, "Done", listAll(t, app)[0].Status)

	_, err = run(t, statusCmd, "00000001", "todo")
	require.NoError(t, err)
	assert.Equal(t, "To Do", listAll(t, app)[0].Status)

	_, err = run(t, statusCmd, "00000001", "blocked")
	assert.Error(t, err)

	_, err = run(t, statusCmd, "ffffffff", "done")
	assert.ErrorContains(t, err, "task not found")
}

func TestUpdateCmd(t *testing.T) {
	app := setupTestApp(t)
	mustCreate(t, "Old title", func() { dueDate = "2024-06-01" })

	require.NoError(t, updateCmd.Flags().Set("title", "New title"))
	require.NoError(t, updateCmd.Flags().Set("clear-due", "true"))
	out, err := run(t, updateCmd, "00000001-0000-4000-8000-000000000000")
	require.NoError(t, err)
	assert.Contains(t, out, "Task updated")

	tasks := listAll(t, app)
	assert.Equal(t, "New title", tasks[0].Title)
	assert.Empty(t, tasks[0].DueDate)
}

func TestUpdateCmd_NoFlags(t *testing.T) {
	setupTestApp(t)
	mustCreate(t, "Task")

	_, err := run(t, updateCmd, "00000001")
	assert.ErrorContains(t, err, "no updates specified")
}

func TestDeleteCmd(t *testing.T) {
	app := setupTestApp(t)
	mustCreate(t, "First")
	mustCreate(t, "Second")

	out, err := run(t, deleteCmd, "00000001")
	require.NoError(t, err)
	assert.Equal(t, "Task deleted: First\n", out)

	tasks := listAll(t, app)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Second", tasks[0].Title)
}

func TestShowCmd(t *testing.T) {
	setupTestApp(t)
	mustCreate(t, "Late", func() { dueDate = "2024-05-01"; description = "details" })

	out, err := run(t, showCmd, "00000001")
	require.NoError(t, err)
	assert.Contains(t, out, "Title:       Late")
	assert.Contains(t, out, "Status:      ( ) To Do")
	assert.Contains(t, out, "Description: details")
	assert.Contains(t, out, "Due:         2024-05-01 • Overdue")
	assert.Contains(t, out, "Created:     2024-05-10T14:00:00.000Z")
}

func TestResolveTaskID(t *testing.T) {
	app := setupTestApp(t)
	mustCreate(t, "One")
	mustCreate(t, "Two")

	id, err := resolveTaskID(app, "00000002")
	require.NoError(t, err)
	assert.Equal(t, "00000002-0000-4000-8000-000000000000", id)

	_, err = resolveTaskID(app, "0000000")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveTaskID(app, "zzz")
	assert.ErrorContains(t, err, "task not found")
}

func TestCommands_RequireApp(t *testing.T) {
	cli.SetApp(nil)

	_, err := run(t, listCmd)
	assert.ErrorIs(t, err, errNotInitialized)
	_, err = run(t, createCmd, "x")
	assert.ErrorIs(t, err, errNotInitialized)
}
