package outbox

import (
	"context"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/shared/domain"
)

// Repository persists outbox messages. Save and SaveBatch join the unit of
// work in ctx so events commit together with the aggregate that raised them.
type Repository interface {
	Save(ctx context.Context, msg *Message) error
	SaveBatch(ctx context.Context, msgs []*Message) error

	// GetUnpublished returns pending messages whose retry time has come,
	// oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]*Message, error)

	MarkPublished(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error
	MarkDead(ctx context.Context, id int64, reason string) error

	// GetDead lists dead-lettered messages, newest first.
	GetDead(ctx context.Context, limit int) ([]*Message, error)

	// Requeue clears the dead-letter state and retry count of a message.
	Requeue(ctx context.Context, id int64) error

	// CountPending counts messages not yet published or dead-lettered.
	CountPending(ctx context.Context) (int64, error)

	// DeleteOld removes published messages older than the retention period.
	DeleteOld(ctx context.Context, olderThanDays int) (int64, error)
}

// Writer is the part of Repository command handlers need.
type Writer interface {
	SaveBatch(ctx context.Context, msgs []*Message) error
}

// Record converts events to messages and saves them through w.
func Record(ctx context.Context, w Writer, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs, err := NewMessages(events)
	if err != nil {
		return err
	}
	return w.SaveBatch(ctx, msgs)
}
