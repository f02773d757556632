package mcp

import (
	"context"
	"fmt"

	energyCommands "github.com/felixgeelhaar/focusflow/internal/energy/application/commands"
	"github.com/felixgeelhaar/focusflow/internal/energy/domain/checkin"
	"github.com/felixgeelhaar/mcp-go"
)

type energyLogInput struct {
	Level string `json:"level" jsonschema:"required"`
	Day   string `json:"day,omitempty"`
	Note  string `json:"note,omitempty"`
}

type energyLogResult struct {
	CheckInID string `json:"checkin_id"`
	Day       string `json:"day"`
	Level     string `json:"level"`
	Replaced  bool   `json:"replaced"`
}

type energyCurrentResult struct {
	Level  string `json:"level"`
	Logged bool   `json:"logged"`
	Note   string `json:"note,omitempty"`
}

type noInput struct{}

func registerEnergyTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("energy.log").
		Description("Record the energy level (low, medium, high) for today or a given day (YYYY-MM-DD)").
		Handler(func(ctx context.Context, input energyLogInput) (*energyLogResult, error) {
			if app == nil || app.LogEnergyHandler == nil {
				return nil, fmt.Errorf("energy logging %w", errNoDatabase)
			}

			cmd := energyCommands.LogEnergyCommand{
				UserID: app.CurrentUserID,
				Level:  input.Level,
				Note:   input.Note,
			}
			if input.Day != "" {
				day, err := checkin.ParseDay(input.Day)
				if err != nil {
					return nil, err
				}
				cmd.Day = day
			}

			result, err := app.LogEnergyHandler.Handle(ctx, cmd)
			if err != nil {
				return nil, err
			}
			return &energyLogResult{
				CheckInID: result.CheckInID.String(),
				Day:       result.Day.Format(checkin.DayLayout),
				Level:     result.Level.String(),
				Replaced:  result.Replaced,
			}, nil
		})

	srv.Tool("energy.current").
		Description("Today's energy level; logged is false when there is no check-in yet").
		Handler(func(ctx context.Context, _ noInput) (*energyCurrentResult, error) {
			if app == nil || app.CurrentEnergyHandler == nil {
				return nil, fmt.Errorf("energy lookup %w", errNoDatabase)
			}

			today, err := app.CurrentEnergyHandler.Today(ctx, app.CurrentUserID)
			if err != nil {
				return nil, err
			}
			if today == nil {
				return &energyCurrentResult{}, nil
			}
			return &energyCurrentResult{
				Level:  today.Level.String(),
				Logged: true,
				Note:   today.Note,
			}, nil
		})

	return nil
}
