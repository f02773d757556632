package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/mcp-go"
)

type energyInput struct {
	Energy string `json:"energy,omitempty"`
}

type priorityScoreInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
	Energy string `json:"energy,omitempty"`
}

// priorityOverrideInput clears the override when score is omitted.
type priorityOverrideInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
	Score  *int   `json:"score,omitempty"`
}

type recalculateResult struct {
	Scored       int     `json:"scored"`
	Updated      int     `json:"updated"`
	AverageScore float64 `json:"average_score"`
	Energy       string  `json:"energy,omitempty"`
}

func registerPriorityTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("priority.recalculate").
		Description("Recalculate and store priority scores for all open tasks").
		Handler(func(ctx context.Context, input energyInput) (*recalculateResult, error) {
			if app == nil || app.RecalculatePrioritiesHandler == nil {
				return nil, fmt.Errorf("priority recalculation %w", errNoDatabase)
			}

			result, err := app.RecalculatePrioritiesHandler.Handle(ctx, commands.RecalculatePrioritiesCommand{
				UserID: app.CurrentUserID,
				Energy: input.Energy,
			})
			if err != nil {
				return nil, err
			}
			return &recalculateResult{
				Scored:       result.ScoredCount,
				Updated:      result.UpdatedCount,
				AverageScore: result.AverageScore,
				Energy:       result.Energy.String(),
			}, nil
		})

	srv.Tool("priority.next").
		Description("Recommend the open task to work on now. energy defaults to today's check-in.").
		Handler(func(ctx context.Context, input energyInput) (*queries.NextTaskResult, error) {
			if app == nil || app.NextTaskHandler == nil {
				return nil, fmt.Errorf("next task %w", errNoDatabase)
			}
			return app.NextTaskHandler.Handle(ctx, queries.NextTaskQuery{
				UserID: app.CurrentUserID,
				Energy: input.Energy,
			})
		})

	srv.Tool("priority.score").
		Description("Explain a task's priority score with its eisenhower, deadline, energy and dependency parts").
		Handler(func(ctx context.Context, input priorityScoreInput) (*queries.ScoreTaskResult, error) {
			if app == nil || app.ScoreTaskHandler == nil {
				return nil, fmt.Errorf("task scoring %w", errNoDatabase)
			}
			taskID, err := parseUUID(input.TaskID)
			if err != nil {
				return nil, err
			}
			return app.ScoreTaskHandler.Handle(ctx, queries.ScoreTaskQuery{
				TaskID: taskID,
				UserID: app.CurrentUserID,
				Energy: input.Energy,
			})
		})

	srv.Tool("priority.override").
		Description("Pin a task's priority to a score from 0 to 100; omit score to remove the pin").
		Handler(func(ctx context.Context, input priorityOverrideInput) (map[string]any, error) {
			if app == nil || app.SetPriorityOverrideHandler == nil {
				return nil, fmt.Errorf("priority override %w", errNoDatabase)
			}
			taskID, err := parseUUID(input.TaskID)
			if err != nil {
				return nil, err
			}

			if err := app.SetPriorityOverrideHandler.Handle(ctx, commands.SetPriorityOverrideCommand{
				TaskID: taskID,
				UserID: app.CurrentUserID,
				Score:  input.Score,
			}); err != nil {
				return nil, err
			}
			return map[string]any{"task_id": taskID, "score": input.Score}, nil
		})

	return nil
}
