package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/focusflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/mcp-go"
)

// RegisterResources registers read-only views of the current user's data.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	srv.Resource("focusflow://tasks/open").
		Name("Open Tasks").
		Description("Open tasks, highest priority first").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.ListTasksHandler == nil {
				return nil, fmt.Errorf("task listing %w", errNoDatabase)
			}

			tasks, err := app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
				UserID: app.CurrentUserID,
				Limit:  100,
			})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, tasks)
		})

	srv.Resource("focusflow://priority/next").
		Name("Next Task").
		Description("The task recommended for right now").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.NextTaskHandler == nil {
				return nil, fmt.Errorf("next task %w", errNoDatabase)
			}

			next, err := app.NextTaskHandler.Handle(ctx, queries.NextTaskQuery{UserID: app.CurrentUserID})
			if errors.Is(err, queries.ErrNoOpenTasks) {
				return jsonResource(uri, map[string]any{"task": nil})
			}
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, next)
		})

	srv.Resource("focusflow://energy/today").
		Name("Today's Energy").
		Description("Today's energy check-in, if any").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.CurrentEnergyHandler == nil {
				return nil, fmt.Errorf("energy lookup %w", errNoDatabase)
			}

			today, err := app.CurrentEnergyHandler.Today(ctx, app.CurrentUserID)
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, today)
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
