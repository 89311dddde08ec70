package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/commands"
	"github.com/felixgeelhaar/taskdeck/internal/tracker/application/queries"
)

type taskCreateInput struct {
	Title       string `json:"title" jsonschema:"required"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

type taskUpdateInput struct {
	TaskID      string  `json:"task_id" jsonschema:"required"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueDate     *string `json:"due_date,omitempty"` // "" clears the due date
}

type taskStatusInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
	Status string `json:"status" jsonschema:"required"`
}

type taskListInput struct {
	Status string `json:"status,omitempty"`
	Date   string `json:"date,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

type taskCreateOutput struct {
	TaskID   string `json:"task_id"`
	Revision uint64 `json:"revision"`
}

type taskUpdateOutput struct {
	TaskID   string   `json:"task_id"`
	Found    bool     `json:"found"`
	Changed  bool     `json:"changed"`
	Fields   []string `json:"fields,omitempty"`
	Revision uint64   `json:"revision"`
}

type taskStatusOutput struct {
	TaskID   string `json:"task_id"`
	Found    bool   `json:"found"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Revision uint64 `json:"revision"`
}

type taskDeleteOutput struct {
	TaskID   string `json:"task_id"`
	Found    bool   `json:"found"`
	Title    string `json:"title,omitempty"`
	Revision uint64 `json:"revision"`
}

type taskListOutput struct {
	Tasks   []queries.TaskDTO `json:"tasks"`
	Total   int               `json:"total"`
	Matched int               `json:"matched"`
	Message string            `json:"message"`
}

type taskGetOutput struct {
	Found bool             `json:"found"`
	Task  *queries.TaskDTO `json:"task,omitempty"`
}

var errNotInitialized = errors.New("task store not initialized")

func registerTaskTools(srv *mcp.Server, s *session) error {
	srv.Tool("task.create").
		Description("Create a new task at the end of the list").
		Handler(s.createTask)

	srv.Tool("task.update").
		Description("Update a task; omitted fields are kept and an empty due_date clears it").
		Handler(s.updateTask)

	srv.Tool("task.status").
		Description("Move a task to another status (todo, in-progress, done)").
		Handler(s.setStatus)

	srv.Tool("task.delete").
		Description("Delete a task permanently").
		Handler(s.deleteTask)

	srv.Tool("task.get").
		Description("Get a task by id").
		Handler(s.getTask)

	srv.Tool("task.list").
		Description("List tasks filtered by status (all, todo, in-progress, done) and date (all, overdue, today, upcoming)").
		Handler(s.listTasks)

	srv.Tool("task.stats").
		Description("Task counts per status, overdue tasks and completion rate").
		Handler(func(ctx context.Context, input struct{}) (*queries.Stats, error) {
			return s.stats(ctx)
		})

	return nil
}

func (s *session) createTask(ctx context.Context, input taskCreateInput) (*taskCreateOutput, error) {
	ctx, done := s.begin(ctx)
	defer done()

	if s.app.CreateTaskHandler == nil {
		return nil, errNotInitialized
	}
	result, err := s.app.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return nil, err
	}
	return &taskCreateOutput{TaskID: result.TaskID, Revision: result.Revision}, nil
}

func (s *session) updateTask(ctx context.Context, input taskUpdateInput) (*taskUpdateOutput, error) {
	ctx, done := s.begin(ctx)
	defer done()

	if s.app.UpdateTaskHandler == nil {
		return nil, errNotInitialized
	}
	result, err := s.app.UpdateTaskHandler.Handle(ctx, commands.UpdateTaskCommand{
		TaskID:      input.TaskID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return nil, err
	}
	return &taskUpdateOutput{
		TaskID:   input.TaskID,
		Found:    result.Found,
		Changed:  result.Changed,
		Fields:   result.Fields,
		Revision: result.Revision,
	}, nil
}

func (s *session) setStatus(ctx context.Context, input taskStatusInput) (*taskStatusOutput, error) {
	ctx, done := s.begin(ctx)
	defer done()

	if s.app.SetStatusHandler == nil {
		return nil, errNotInitialized
	}
	result, err := s.app.SetStatusHandler.Handle(ctx, commands.SetStatusCommand{
		TaskID: input.TaskID,
		Status: input.Status,
	})
	if err != nil {
		return nil, err
	}

	out := &taskStatusOutput{TaskID: input.TaskID, Found: result.Found, Revision: result.Revision}
	if result.Found {
		out.From = result.From.String()
		out.To = result.To.String()
	}
	return out, nil
}

func (s *session) deleteTask(ctx context.Context, input taskIDInput) (*taskDeleteOutput, error) {
	ctx, done := s.begin(ctx)
	defer done()

	if s.app.DeleteTaskHandler == nil {
		return nil, errNotInitialized
	}
	result, err := s.app.DeleteTaskHandler.Handle(ctx, commands.DeleteTaskCommand{TaskID: input.TaskID})
	if err != nil {
		return nil, err
	}
	return &taskDeleteOutput{
		TaskID:   input.TaskID,
		Found:    result.Found,
		Title:    result.Title,
		Revision: result.Revision,
	}, nil
}

func (s *session) getTask(ctx context.Context, input taskIDInput) (*taskGetOutput, error) {
	ctx, done := s.begin(ctx)
	defer done()

	if s.app.GetTaskHandler == nil {
		return nil, errNotInitialized
	}
	result, err := s.app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: input.TaskID})
	if err != nil {
		return nil, err
	}
	if !result.Found {
		return &taskGetOutput{}, nil
	}
	return &taskGetOutput{Found: true, Task: &result.Task}, nil
}

func (s *session) listTasks(ctx context.Context, input taskListInput) (*taskListOutput, error) {
	ctx, done := s.begin(ctx)
	defer done()

	if s.app.ListTasksHandler == nil {
		return nil, errNotInitialized
	}
	result, err := s.app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
		Status: input.Status,
		Date:   input.Date,
	})
	if err != nil {
		return nil, err
	}

	msg := result.EmptyMessage()
	if msg == "" {
		msg = result.Summary()
	}
	return &taskListOutput{
		Tasks:   result.Tasks,
		Total:   result.Total,
		Matched: result.Matched,
		Message: msg,
	}, nil
}

func (s *session) stats(ctx context.Context) (*queries.Stats, error) {
	ctx, done := s.begin(ctx)
	defer done()

	if s.app.GetStatsHandler == nil {
		return nil, errNotInitialized
	}
	return s.app.GetStatsHandler.Handle(ctx)
}
