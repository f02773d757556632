package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/energy/domain/checkin"
	"github.com/google/uuid"
)

const DefaultHistoryDays = 7

// EnergyHistoryQuery asks for the last Days days, today included.
type EnergyHistoryQuery struct {
	UserID uuid.UUID
	Days   int
}

// EnergyHistoryHandler lists recent check-ins.
type EnergyHistoryHandler struct {
	repo checkin.Repository
	now  func() time.Time
}

func NewEnergyHistoryHandler(repo checkin.Repository, clock func() time.Time) *EnergyHistoryHandler {
	if clock == nil {
		clock = time.Now
	}
	return &EnergyHistoryHandler{repo: repo, now: clock}
}

// Handle returns check-ins newest first. Days without a check-in are absent.
func (h *EnergyHistoryHandler) Handle(ctx context.Context, query EnergyHistoryQuery) ([]CheckInDTO, error) {
	days := query.Days
	if days <= 0 {
		days = DefaultHistoryDays
	}

	to := checkin.DayOf(h.now())
	from := to.AddDate(0, 0, -(days - 1))

	checkIns, err := h.repo.ListRange(ctx, query.UserID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]CheckInDTO, 0, len(checkIns))
	for _, c := range checkIns {
		out = append(out, toDTO(c))
	}
	return out, nil
}
