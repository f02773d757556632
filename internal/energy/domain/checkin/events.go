package checkin

import (
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/focusflow/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType    = "EnergyCheckIn"
	RoutingKeyLogged = "core.energy.logged"
)

// EnergyLogged is emitted whenever a day's energy is logged or replaced.
type EnergyLogged struct {
	domain.BaseEvent
	UserID   uuid.UUID `json:"user_id"`
	Day      string    `json:"day"`
	Level    string    `json:"level"`
	Previous string    `json:"previous,omitempty"`
}

func NewEnergyLogged(id, userID uuid.UUID, day time.Time, level value_objects.EnergyLevel, previous *value_objects.EnergyLevel) *EnergyLogged {
	e := &EnergyLogged{
		BaseEvent: domain.NewBaseEvent(id, AggregateType, RoutingKeyLogged),
		UserID:    userID,
		Day:       day.Format(DayLayout),
		Level:     string(level),
	}
	if previous != nil {
		e.Previous = string(*previous)
	}
	return e
}
