package cli

import (
	"context"
	"errors"

	energyCommands "github.com/felixgeelhaar/focusflow/internal/energy/application/commands"
	energyQueries "github.com/felixgeelhaar/focusflow/internal/energy/application/queries"
	internalApp "github.com/felixgeelhaar/focusflow/internal/app"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/focusflow/pkg/observability"
	"github.com/google/uuid"
)

// ErrNotInitialized is returned by commands that need the database.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

// App holds the CLI application dependencies.
type App struct {
	// Task Command Handlers
	CreateTaskHandler     *commands.CreateTaskHandler
	UpdateTaskHandler     *commands.UpdateTaskHandler
	CompleteTaskHandler   *commands.CompleteTaskHandler
	TransitionTaskHandler *commands.TransitionTaskHandler
	AddSubtaskHandler     *commands.AddSubtaskHandler

	// Task Query Handlers
	GetTaskHandler   *queries.GetTaskHandler
	ListTasksHandler *queries.ListTasksHandler

	// Priority Handlers
	RecalculatePrioritiesHandler *commands.RecalculatePrioritiesHandler
	SetPriorityOverrideHandler   *commands.SetPriorityOverrideHandler
	NextTaskHandler              *queries.NextTaskHandler
	ScoreTaskHandler             *queries.ScoreTaskHandler
	ListScoresHandler            *queries.ListScoresHandler

	// Energy Handlers
	LogEnergyHandler     *energyCommands.LogEnergyHandler
	CurrentEnergyHandler *energyQueries.CurrentEnergyHandler
	EnergyHistoryHandler *energyQueries.EnergyHistoryHandler

	Health *observability.HealthRegistry

	// flush delivers events the command left in the outbox.
	flush func(ctx context.Context) error

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// NewApp creates a CLI application backed by the container's handlers.
func NewApp(c *internalApp.Container) *App {
	return &App{
		CreateTaskHandler:            c.CreateTaskHandler,
		UpdateTaskHandler:            c.UpdateTaskHandler,
		CompleteTaskHandler:          c.CompleteTaskHandler,
		TransitionTaskHandler:        c.TransitionTaskHandler,
		AddSubtaskHandler:            c.AddSubtaskHandler,
		GetTaskHandler:               c.GetTaskHandler,
		ListTasksHandler:             c.ListTasksHandler,
		RecalculatePrioritiesHandler: c.RecalculatePrioritiesHandler,
		SetPriorityOverrideHandler:   c.SetPriorityOverrideHandler,
		NextTaskHandler:              c.NextTaskHandler,
		ScoreTaskHandler:             c.ScoreTaskHandler,
		ListScoresHandler:            c.ListScoresHandler,
		LogEnergyHandler:             c.LogEnergyHandler,
		CurrentEnergyHandler:         c.CurrentEnergyHandler,
		EnergyHistoryHandler:         c.EnergyHistoryHandler,
		Health:                       c.Health,
		flush:                        c.DrainOutbox,
		CurrentUserID:                uuid.Nil,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// Flush publishes pending outbox events. The CLI is short-lived, so it
// drains once after every command instead of running the poller.
func (a *App) Flush(ctx context.Context) error {
	if a == nil || a.flush == nil {
		return nil
	}
	return a.flush(ctx)
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
