package checkin

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for check-in persistence.
type Repository interface {
	// Save upserts on (user, day).
	Save(ctx context.Context, c *CheckIn) error
	// FindByUserAndDay returns ErrCheckInNotFound when nothing was logged.
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*CheckIn, error)
	FindLatest(ctx context.Context, userID uuid.UUID) (*CheckIn, error)
	// ListRange returns check-ins with from <= day <= to, newest first.
	ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*CheckIn, error)
}
