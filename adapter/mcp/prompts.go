package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common task board workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("daily_review").
		Description("Review overdue tasks and tasks due today, and decide what to work on next.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Daily Review", `Help me review my task board. Please:

1. Read taskdeck://tasks/overdue and taskdeck://tasks/today
2. Read taskdeck://stats for the overall picture

Then:
- List overdue tasks that are not done and ask whether to reschedule or delete each one
- Suggest at most three tasks to move to In Progress today
- Point out tasks that are In Progress but have no due date

Apply my decisions with the task.update, task.status and task.delete tools.`), nil
		})

	srv.Prompt("task_breakdown").
		Description("Break down a complex task into smaller tasks on the board.").
		Argument("task_description", "Description of the task to break down", true).
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			taskDesc := args["task_description"]
			if taskDesc == "" {
				taskDesc = "[Please describe the task you want to break down]"
			}

			return userPrompt("Task Breakdown Assistant", fmt.Sprintf(`Help me break down this task into smaller, actionable tasks:

**Task:** %s

Please:
1. Identify the main components of the task
2. Break it into 3-7 tasks that can each be finished in one sitting
3. For each task suggest a clear title, a one-line description and, if useful, a due date (YYYY-MM-DD)
4. Suggest the order in which to do them

Once I approve the breakdown, use the task.create tool to create each task in that order.`, taskDesc)), nil
		})

	return nil
}

func userPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
