// Package checkin records how much energy a user reports for a day.
package checkin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/focusflow/internal/shared/domain"
	"github.com/google/uuid"
)

const DayLayout = "2006-01-02"

var (
	ErrLevelRequired   = errors.New("energy level is required")
	ErrCheckInNotFound = errors.New("energy check-in not found")
	ErrInvalidDay      = errors.New("invalid day")
)

// CheckIn is a user's self-reported energy for one calendar day. There is at
// most one per user and day; logging again replaces the level.
type CheckIn struct {
	domain.BaseAggregateRoot
	userID   uuid.UUID
	day      time.Time
	level    value_objects.EnergyLevel
	note     string
	loggedAt time.Time
}

// DayOf truncates t to its calendar date in t's location and returns it as
// midnight UTC, so days compare equal regardless of zone.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay reads a YYYY-MM-DD date.
func ParseDay(s string) (time.Time, error) {
	d, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return d, nil
}

func NewCheckIn(userID uuid.UUID, day time.Time, level value_objects.EnergyLevel, note string) (*CheckIn, error) {
	if err := validateLevel(level); err != nil {
		return nil, err
	}

	c := &CheckIn{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		day:               DayOf(day),
		level:             level,
		note:              strings.TrimSpace(note),
		loggedAt:          time.Now().UTC(),
	}
	c.AddDomainEvent(NewEnergyLogged(c.ID(), userID, c.day, level, nil))
	return c, nil
}

// Relog replaces the level and note of an existing check-in.
func (c *CheckIn) Relog(level value_objects.EnergyLevel, note string) error {
	if err := validateLevel(level); err != nil {
		return err
	}
	previous := c.level
	c.level = level
	c.note = strings.TrimSpace(note)
	c.loggedAt = time.Now().UTC()
	c.Touch()
	c.AddDomainEvent(NewEnergyLogged(c.ID(), c.userID, c.day, level, &previous))
	return nil
}

func validateLevel(level value_objects.EnergyLevel) error {
	if !level.IsSet() {
		return ErrLevelRequired
	}
	if !level.IsValid() {
		return fmt.Errorf("%w: %q", value_objects.ErrInvalidEnergyLevel, level)
	}
	return nil
}

func (c *CheckIn) UserID() uuid.UUID                { return c.userID }
func (c *CheckIn) Day() time.Time                   { return c.day }
func (c *CheckIn) DayString() string                { return c.day.Format(DayLayout) }
func (c *CheckIn) Level() value_objects.EnergyLevel { return c.level }
func (c *CheckIn) Note() string                     { return c.note }
func (c *CheckIn) LoggedAt() time.Time              { return c.loggedAt }

// Rehydrate rebuilds a stored check-in without raising events.
func Rehydrate(id, userID uuid.UUID, day time.Time, level value_objects.EnergyLevel, note string, loggedAt time.Time) *CheckIn {
	entity := domain.RehydrateBaseEntity(id, loggedAt, loggedAt)
	return &CheckIn{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(entity, 0),
		userID:            userID,
		day:               DayOf(day),
		level:             level,
		note:              note,
		loggedAt:          loggedAt,
	}
}
