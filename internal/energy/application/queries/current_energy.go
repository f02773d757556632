package queries

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/energy/domain/checkin"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
)

// CurrentEnergyHandler resolves the energy level to score against: today's
// check-in, or EnergyNone when nothing was logged today.
type CurrentEnergyHandler struct {
	repo checkin.Repository
	now  func() time.Time
}

// NewCurrentEnergyHandler creates a new handler. A nil clock means time.Now.
func NewCurrentEnergyHandler(repo checkin.Repository, clock func() time.Time) *CurrentEnergyHandler {
	if clock == nil {
		clock = time.Now
	}
	return &CurrentEnergyHandler{repo: repo, now: clock}
}

// CurrentEnergy returns today's level.
func (h *CurrentEnergyHandler) CurrentEnergy(ctx context.Context, userID uuid.UUID) (value_objects.EnergyLevel, error) {
	c, err := h.repo.FindByUserAndDay(ctx, userID, checkin.DayOf(h.now()))
	if errors.Is(err, checkin.ErrCheckInNotFound) {
		return value_objects.EnergyNone, nil
	}
	if err != nil {
		return value_objects.EnergyNone, err
	}
	return c.Level(), nil
}

// CheckInDTO is a data transfer object for check-ins.
type CheckInDTO struct {
	ID       uuid.UUID
	Day      string
	Level    value_objects.EnergyLevel
	Note     string
	LoggedAt time.Time
}

func toDTO(c *checkin.CheckIn) CheckInDTO {
	return CheckInDTO{
		ID:       c.ID(),
		Day:      c.DayString(),
		Level:    c.Level(),
		Note:     c.Note(),
		LoggedAt: c.LoggedAt(),
	}
}

// Today returns today's check-in, or nil.
func (h *CurrentEnergyHandler) Today(ctx context.Context, userID uuid.UUID) (*CheckInDTO, error) {
	c, err := h.repo.FindByUserAndDay(ctx, userID, checkin.DayOf(h.now()))
	if errors.Is(err, checkin.ErrCheckInNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	dto := toDTO(c)
	return &dto, nil
}
