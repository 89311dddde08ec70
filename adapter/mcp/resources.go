package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterResources registers MCP resources that expose the task list.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	if deps.App == nil {
		return fmt.Errorf("app is required")
	}

	s := newSession(deps)

	// One resource per date view; all of them list every status.
	views := []struct {
		uri, name, description, date string
	}{
		{"taskdeck://tasks", "Tasks", "All tasks in list order", "all"},
		{"taskdeck://tasks/overdue", "Overdue Tasks", "Tasks whose due date has passed", "overdue"},
		{"taskdeck://tasks/today", "Tasks Due Today", "Tasks due today", "today"},
		{"taskdeck://tasks/upcoming", "Upcoming Tasks", "Tasks due in the future", "upcoming"},
	}
	for _, v := range views {
		date := v.date
		srv.Resource(v.uri).
			Name(v.name).
			Description(v.description).
			MimeType("application/json").
			Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
				result, err := s.listTasks(ctx, taskListInput{Date: date})
				if err != nil {
					return nil, err
				}
				return jsonResource(uri, result)
			})
	}

	srv.Resource("taskdeck://stats").
		Name("Task Stats").
		Description("Counts per status, overdue tasks and completion rate").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			stats, err := s.stats(ctx)
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, stats)
		})

	return nil
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
