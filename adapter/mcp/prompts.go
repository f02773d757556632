package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common FocusFlow workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("daily_focus").
		Description("Start the day: check in your energy, refresh priorities and pick the first task.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Daily Focus",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me decide what to work on today.

1. Read focusflow://energy/today. If there is no check-in, ask how I feel
   and record it with energy.log.
2. Run priority.recalculate.
3. Call priority.next and explain the choice with priority.score.
4. List the next few open tasks with task.list (limit 5).

Keep the answer short: the one task to start with, why, and what comes after.`,
						},
					},
				},
			}, nil
		})

	srv.Prompt("triage").
		Description("Walk through unsorted tasks and assign each an Eisenhower quadrant and energy level.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Task Triage",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Go through my open tasks (task.list) and find the ones without a
quadrant or energy level. For each, suggest:

- a quadrant: q1 urgent & important, q2 important, q3 urgent, q4 neither
- the energy it needs: low, medium or high
- a deadline, if the title implies one

Ask before changing anything, then apply what I confirm with task.update.`,
						},
					},
				},
			}, nil
		})

	return nil
}
