package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// ErrMessageNotFound is returned when an update targets a missing row.
var ErrMessageNotFound = errors.New("outbox message not found")

const selectColumns = `SELECT id, event_id, aggregate_type, aggregate_id, event_type, routing_key,
    payload, metadata, created_at, published_at, next_retry_at, retry_count,
    last_error, dead_lettered_at, dead_letter_reason
FROM outbox`

// SQLRepository implements Repository for every supported driver.
type SQLRepository struct {
	conn database.Connection
	now  func() time.Time
}

func NewSQLRepository(conn database.Connection) *SQLRepository {
	return &SQLRepository{conn: conn, now: func() time.Time { return time.Now().UTC() }}
}

func (r *SQLRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *SQLRepository) Save(ctx context.Context, msg *Message) error {
	return r.insert(ctx, r.exec(ctx), msg)
}

// SaveBatch inserts msgs in the caller's transaction, or in its own when
// ctx carries none.
func (r *SQLRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	if len(msgs) == 0 {
		return nil
	}

	if _, ok := database.TxInfoFromContext(ctx); ok {
		return r.insertAll(ctx, r.exec(ctx), msgs)
	}

	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return err
	}
	if err := r.insertAll(ctx, tx, msgs); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (r *SQLRepository) insertAll(ctx context.Context, exec database.Executor, msgs []*Message) error {
	for _, msg := range msgs {
		if err := r.insert(ctx, exec, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLRepository) insert(ctx context.Context, exec database.Executor, msg *Message) error {
	var metadata *string
	if len(msg.Metadata) > 0 {
		s := string(msg.Metadata)
		metadata = &s
	}

	row := exec.QueryRow(ctx, `INSERT INTO outbox
    (event_id, aggregate_type, aggregate_id, event_type, routing_key, payload, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`,
		msg.EventID.String(),
		msg.AggregateType,
		msg.AggregateID.String(),
		msg.EventType,
		msg.RoutingKey,
		string(msg.Payload),
		metadata,
		msg.CreatedAt.UTC(),
	)
	if err := row.Scan(&msg.ID); err != nil {
		return fmt.Errorf("insert outbox message %s: %w", msg.EventID, err)
	}
	return nil
}

func (r *SQLRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	return r.list(ctx, selectColumns+`
WHERE published_at IS NULL AND dead_lettered_at IS NULL
  AND (next_retry_at IS NULL OR next_retry_at <= ?)
ORDER BY created_at, id
LIMIT ?`, r.now(), limit)
}

func (r *SQLRepository) GetDead(ctx context.Context, limit int) ([]*Message, error) {
	return r.list(ctx, selectColumns+`
WHERE dead_lettered_at IS NOT NULL
ORDER BY dead_lettered_at DESC, id DESC
LIMIT ?`, limit)
}

func (r *SQLRepository) MarkPublished(ctx context.Context, id int64) error {
	return r.update(ctx, `UPDATE outbox SET published_at = ?, next_retry_at = NULL WHERE id = ?`, r.now(), id)
}

func (r *SQLRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	return r.update(ctx, `UPDATE outbox
SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ?
WHERE id = ?`, errMsg, nextRetryAt.UTC(), id)
}

func (r *SQLRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	return r.update(ctx, `UPDATE outbox
SET retry_count = retry_count + 1, last_error = ?, dead_lettered_at = ?, dead_letter_reason = ?
WHERE id = ?`, reason, r.now(), reason, id)
}

func (r *SQLRepository) Requeue(ctx context.Context, id int64) error {
	return r.update(ctx, `UPDATE outbox
SET dead_lettered_at = NULL, dead_letter_reason = NULL, retry_count = 0, next_retry_at = NULL
WHERE id = ? AND published_at IS NULL`, id)
}

func (r *SQLRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.exec(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM outbox WHERE published_at IS NULL AND dead_lettered_at IS NULL`).Scan(&n)
	return n, err
}

func (r *SQLRepository) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := r.now().AddDate(0, 0, -olderThanDays)
	res, err := r.exec(ctx).Exec(ctx,
		`DELETE FROM outbox WHERE published_at IS NOT NULL AND published_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLRepository) update(ctx context.Context, query string, args ...any) error {
	res, err := r.exec(ctx).Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]*Message, error) {
	rows, err := r.exec(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func scanMessage(row database.Row) (*Message, error) {
	var (
		msg                    Message
		eventID, aggregateID   string
		payload                string
		metadata               *string
		publishedAt, nextRetry *time.Time
		deadAt                 *time.Time
	)
	err := row.Scan(
		&msg.ID, &eventID, &msg.AggregateType, &aggregateID, &msg.EventType, &msg.RoutingKey,
		&payload, &metadata, &msg.CreatedAt, &publishedAt, &nextRetry, &msg.RetryCount,
		&msg.LastError, &deadAt, &msg.DeadLetterReason,
	)
	if err != nil {
		return nil, err
	}

	if msg.EventID, err = uuid.Parse(eventID); err != nil {
		return nil, fmt.Errorf("outbox %d: bad event id: %w", msg.ID, err)
	}
	if msg.AggregateID, err = uuid.Parse(aggregateID); err != nil {
		return nil, fmt.Errorf("outbox %d: bad aggregate id: %w", msg.ID, err)
	}
	msg.Payload = json.RawMessage(payload)
	if metadata != nil {
		msg.Metadata = json.RawMessage(*metadata)
	}
	msg.PublishedAt = publishedAt
	msg.NextRetryAt = nextRetry
	msg.DeadLetteredAt = deadAt
	return &msg, nil
}
