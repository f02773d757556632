package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/mcp-go"
)

type taskCreateInput struct {
	Title          string `json:"title" jsonschema:"required"`
	Description    string `json:"description,omitempty"`
	Category       string `json:"category,omitempty"`
	Quadrant       string `json:"quadrant,omitempty"`
	Energy         string `json:"energy,omitempty"`
	Deadline       string `json:"deadline,omitempty"`
	Estimate       int    `json:"estimate_minutes,omitempty"`
	ManualPriority *int   `json:"manual_priority,omitempty"`
	ParentID       string `json:"parent_id,omitempty"`
}

type taskListInput struct {
	IncludeCompleted bool   `json:"include_completed,omitempty"`
	Status           string `json:"status,omitempty"`
	Category         string `json:"category,omitempty"`
	SortBy           string `json:"sort_by,omitempty"`
	Energy           string `json:"energy,omitempty"`
	Limit            int    `json:"limit,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

// taskUpdateInput changes only the fields that are present. An empty string
// clears category, quadrant or energy.
type taskUpdateInput struct {
	TaskID        string  `json:"task_id" jsonschema:"required"`
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Category      *string `json:"category,omitempty"`
	Quadrant      *string `json:"quadrant,omitempty"`
	Energy        *string `json:"energy,omitempty"`
	Deadline      *string `json:"deadline,omitempty"`
	ClearDeadline bool    `json:"clear_deadline,omitempty"`
	Estimate      *int    `json:"estimate_minutes,omitempty"`
}

type taskMoveInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
	Status string `json:"status" jsonschema:"required"`
}

type taskMoveResult struct {
	TaskID string `json:"task_id"`
	From   string `json:"from"`
	To     string `json:"to"`
}

func registerTaskTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("task.create").
		Description("Create a new task. quadrant accepts q1-q4 or do/schedule/delegate/eliminate; energy is low, medium or high.").
		Handler(func(ctx context.Context, input taskCreateInput) (*commands.CreateTaskResult, error) {
			if app == nil || app.CreateTaskHandler == nil {
				return nil, fmt.Errorf("task creation %w", errNoDatabase)
			}

			deadline, err := parseDeadline(input.Deadline)
			if err != nil {
				return nil, err
			}
			parentID, err := parseOptionalUUID(input.ParentID)
			if err != nil {
				return nil, err
			}

			return app.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
				UserID:          app.CurrentUserID,
				Title:           input.Title,
				Description:     input.Description,
				Category:        input.Category,
				Quadrant:        input.Quadrant,
				Energy:          input.Energy,
				Deadline:        deadline,
				EstimateMinutes: input.Estimate,
				ManualPriority:  input.ManualPriority,
				ParentID:        parentID,
			})
		})

	srv.Tool("task.list").
		Description("List tasks, highest priority first unless sort_by is deadline or created").
		Handler(func(ctx context.Context, input taskListInput) ([]queries.TaskDTO, error) {
			if app == nil || app.ListTasksHandler == nil {
				return nil, fmt.Errorf("task listing %w", errNoDatabase)
			}

			return app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
				UserID:           app.CurrentUserID,
				Status:           input.Status,
				Category:         input.Category,
				IncludeCompleted: input.IncludeCompleted,
				SortBy:           input.SortBy,
				Energy:           input.Energy,
				Limit:            input.Limit,
			})
		})

	srv.Tool("task.get").
		Description("Get a task by ID").
		Handler(func(ctx context.Context, input taskIDInput) (*queries.TaskDTO, error) {
			if app == nil || app.GetTaskHandler == nil {
				return nil, fmt.Errorf("task lookup %w", errNoDatabase)
			}
			taskID, err := parseUUID(input.TaskID)
			if err != nil {
				return nil, err
			}

			return app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{
				TaskID: taskID,
				UserID: app.CurrentUserID,
			})
		})

	srv.Tool("task.update").
		Description("Update a task's fields; omitted fields stay as they are").
		Handler(func(ctx context.Context, input taskUpdateInput) (map[string]any, error) {
			if app == nil || app.UpdateTaskHandler == nil {
				return nil, fmt.Errorf("task update %w", errNoDatabase)
			}
			taskID, err := parseUUID(input.TaskID)
			if err != nil {
				return nil, err
			}

			cmd := commands.UpdateTaskCommand{
				TaskID:          taskID,
				UserID:          app.CurrentUserID,
				Title:           input.Title,
				Description:     input.Description,
				Category:        input.Category,
				Quadrant:        input.Quadrant,
				Energy:          input.Energy,
				ClearDeadline:   input.ClearDeadline,
				EstimateMinutes: input.Estimate,
			}
			if input.Deadline != nil {
				deadline, err := parseDeadline(*input.Deadline)
				if err != nil {
					return nil, err
				}
				cmd.Deadline = deadline
			}

			result, err := app.UpdateTaskHandler.Handle(ctx, cmd)
			if err != nil {
				return nil, err
			}
			return map[string]any{"task_id": taskID, "changed": result.Changed}, nil
		})

	srv.Tool("task.complete").
		Description("Mark a task as done").
		Handler(func(ctx context.Context, input taskIDInput) (map[string]any, error) {
			if app == nil || app.CompleteTaskHandler == nil {
				return nil, fmt.Errorf("task completion %w", errNoDatabase)
			}
			taskID, err := parseUUID(input.TaskID)
			if err != nil {
				return nil, err
			}

			if err := app.CompleteTaskHandler.Handle(ctx, commands.CompleteTaskCommand{
				TaskID: taskID,
				UserID: app.CurrentUserID,
			}); err != nil {
				return nil, err
			}
			return map[string]any{"task_id": taskID, "completed": true}, nil
		})

	srv.Tool("task.move").
		Description("Move a task to another workflow status (ready, in_progress, waiting, review, done)").
		Handler(func(ctx context.Context, input taskMoveInput) (*taskMoveResult, error) {
			if app == nil || app.TransitionTaskHandler == nil {
				return nil, fmt.Errorf("task transition %w", errNoDatabase)
			}
			taskID, err := parseUUID(input.TaskID)
			if err != nil {
				return nil, err
			}

			result, err := app.TransitionTaskHandler.Handle(ctx, commands.TransitionTaskCommand{
				TaskID: taskID,
				UserID: app.CurrentUserID,
				Status: input.Status,
			})
			if err != nil {
				return nil, err
			}
			return &taskMoveResult{
				TaskID: taskID.String(),
				From:   result.From.String(),
				To:     result.To.String(),
			}, nil
		})

	return nil
}
