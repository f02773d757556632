package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/energy/domain/checkin"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const checkInColumns = `SELECT id, user_id, day, level, note, logged_at FROM energy_checkins`

// SQLCheckInRepository implements checkin.Repository for SQLite and Postgres.
type SQLCheckInRepository struct {
	conn database.Connection
}

// NewSQLCheckInRepository creates a new repository.
func NewSQLCheckInRepository(conn database.Connection) *SQLCheckInRepository {
	return &SQLCheckInRepository{conn: conn}
}

func (r *SQLCheckInRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

// Save upserts on (user_id, day).
func (r *SQLCheckInRepository) Save(ctx context.Context, c *checkin.CheckIn) error {
	_, err := r.exec(ctx).Exec(ctx, `INSERT INTO energy_checkins (id, user_id, day, level, note, logged_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, day) DO UPDATE SET
    level = excluded.level,
    note = excluded.note,
    logged_at = excluded.logged_at`,
		c.ID().String(),
		c.UserID().String(),
		c.DayString(),
		string(c.Level()),
		c.Note(),
		c.LoggedAt().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save energy check-in: %w", err)
	}
	return nil
}

func (r *SQLCheckInRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*checkin.CheckIn, error) {
	row := r.exec(ctx).QueryRow(ctx, checkInColumns+` WHERE user_id = ? AND day = ?`,
		userID.String(), checkin.DayOf(day).Format(checkin.DayLayout))
	return scanOne(row)
}

func (r *SQLCheckInRepository) FindLatest(ctx context.Context, userID uuid.UUID) (*checkin.CheckIn, error) {
	row := r.exec(ctx).QueryRow(ctx, checkInColumns+` WHERE user_id = ? ORDER BY day DESC LIMIT 1`, userID.String())
	return scanOne(row)
}

func (r *SQLCheckInRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*checkin.CheckIn, error) {
	rows, err := r.exec(ctx).Query(ctx, checkInColumns+`
WHERE user_id = ? AND day >= ? AND day <= ?
ORDER BY day DESC`,
		userID.String(),
		checkin.DayOf(from).Format(checkin.DayLayout),
		checkin.DayOf(to).Format(checkin.DayLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*checkin.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanOne(row database.Row) (*checkin.CheckIn, error) {
	c, err := scanCheckIn(row)
	if database.IsNoRows(err) {
		return nil, checkin.ErrCheckInNotFound
	}
	return c, err
}

func scanCheckIn(row database.Row) (*checkin.CheckIn, error) {
	var (
		id, userID, day, level, note string
		loggedAt                     time.Time
	)
	if err := row.Scan(&id, &userID, &day, &level, &note, &loggedAt); err != nil {
		return nil, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("energy check-in %q: bad id: %w", id, err)
	}
	parsedUser, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("energy check-in %s: bad user id: %w", id, err)
	}
	parsedDay, err := checkin.ParseDay(day)
	if err != nil {
		return nil, err
	}
	parsedLevel, err := value_objects.ParseEnergyLevel(level)
	if err != nil {
		return nil, fmt.Errorf("energy check-in %s: %w", id, err)
	}

	return checkin.Rehydrate(parsedID, parsedUser, parsedDay, parsedLevel, note, loggedAt.UTC()), nil
}
