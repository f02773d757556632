package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/energy/domain/checkin"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/focusflow/internal/shared/application"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// LogEnergyCommand records the user's energy for a day.
type LogEnergyCommand struct {
	UserID uuid.UUID
	Level  string
	Day    time.Time // Optional, defaults to today
	Note   string
}

// LogEnergyResult contains the stored check-in.
type LogEnergyResult struct {
	CheckInID uuid.UUID
	Day       time.Time
	Level     value_objects.EnergyLevel
	Replaced  bool
}

// LogEnergyHandler handles LogEnergyCommand.
type LogEnergyHandler struct {
	repo       checkin.Repository
	outboxRepo outbox.Writer
	uow        sharedApplication.UnitOfWork
	now        func() time.Time
}

// NewLogEnergyHandler creates a new LogEnergyHandler.
func NewLogEnergyHandler(repo checkin.Repository, outboxRepo outbox.Writer, uow sharedApplication.UnitOfWork) *LogEnergyHandler {
	return &LogEnergyHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		uow:        uow,
		now:        time.Now,
	}
}

// Handle executes the LogEnergyCommand. A second check-in for the same day
// replaces the first.
func (h *LogEnergyHandler) Handle(ctx context.Context, cmd LogEnergyCommand) (*LogEnergyResult, error) {
	level, err := value_objects.ParseEnergyLevel(cmd.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, cmd.Level)
	}

	day := cmd.Day
	if day.IsZero() {
		day = h.now()
	}

	var result *LogEnergyResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		replaced := true
		c, err := h.repo.FindByUserAndDay(txCtx, cmd.UserID, checkin.DayOf(day))
		switch {
		case errors.Is(err, checkin.ErrCheckInNotFound):
			replaced = false
			c, err = checkin.NewCheckIn(cmd.UserID, day, level, cmd.Note)
			if err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := c.Relog(level, cmd.Note); err != nil {
				return err
			}
		}

		if err := h.repo.Save(txCtx, c); err != nil {
			return err
		}

		events := c.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(txCtx, cmd.UserID))
		if err := outbox.Record(txCtx, h.outboxRepo, events); err != nil {
			return err
		}
		c.ClearDomainEvents()

		result = &LogEnergyResult{
			CheckInID: c.ID(),
			Day:       c.Day(),
			Level:     c.Level(),
			Replaced:  replaced,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
