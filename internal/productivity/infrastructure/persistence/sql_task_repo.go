package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const taskColumns = `SELECT id, user_id, title, description, status, quadrant, category, energy,
    estimate_minutes, due_at, manual_priority, auto_priority, parent_id, subtask_ids,
    completed_at, created_at, updated_at, version
FROM tasks`

// SQLTaskRepository implements task.Repository for SQLite and Postgres.
type SQLTaskRepository struct {
	conn database.Connection
}

// NewSQLTaskRepository creates a new task repository.
func NewSQLTaskRepository(conn database.Connection) *SQLTaskRepository {
	return &SQLTaskRepository{conn: conn}
}

func (r *SQLTaskRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

// Save inserts or updates the task. An update only applies when the stored
// version matches the task's version; the task's version is bumped on success.
func (r *SQLTaskRepository) Save(ctx context.Context, t *task.Task) error {
	ex := r.exec(ctx)

	var stored int
	err := ex.QueryRow(ctx, `SELECT version FROM tasks WHERE id = ?`, t.ID().String()).Scan(&stored)
	switch {
	case database.IsNoRows(err):
		if err := r.insert(ctx, ex, t); err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
	case err != nil:
		return fmt.Errorf("load task version: %w", err)
	case stored != t.Version():
		return task.ErrOptimisticLocking
	default:
		if err := r.update(ctx, ex, t); err != nil {
			return err
		}
	}

	t.IncrementVersion()
	return nil
}

func (r *SQLTaskRepository) insert(ctx context.Context, ex database.Executor, t *task.Task) error {
	_, err := ex.Exec(ctx, `INSERT INTO tasks (
    id, user_id, title, description, status, quadrant, category, energy,
    estimate_minutes, due_at, manual_priority, auto_priority, parent_id, subtask_ids,
    completed_at, created_at, updated_at, version
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID().String(),
		t.UserID().String(),
		t.Title(),
		t.Description(),
		t.Status().String(),
		string(t.Quadrant()),
		string(t.Category()),
		string(t.Energy()),
		t.Estimate().Minutes(),
		nullableTime(t.Deadline()),
		nullableInt(t.ManualPriority()),
		nullableInt(t.AutoPriority()),
		nullableID(t.ParentID()),
		joinIDs(t.SubtaskIDs()),
		nullableTime(t.CompletedAt()),
		t.CreatedAt().UTC(),
		t.UpdatedAt().UTC(),
		t.Version()+1,
	)
	return err
}

func (r *SQLTaskRepository) update(ctx context.Context, ex database.Executor, t *task.Task) error {
	result, err := ex.Exec(ctx, `UPDATE tasks SET
    title = ?, description = ?, status = ?, quadrant = ?, category = ?, energy = ?,
    estimate_minutes = ?, due_at = ?, manual_priority = ?, auto_priority = ?,
    parent_id = ?, subtask_ids = ?, completed_at = ?, updated_at = ?, version = ?
WHERE id = ? AND version = ?`,
		t.Title(),
		t.Description(),
		t.Status().String(),
		string(t.Quadrant()),
		string(t.Category()),
		string(t.Energy()),
		t.Estimate().Minutes(),
		nullableTime(t.Deadline()),
		nullableInt(t.ManualPriority()),
		nullableInt(t.AutoPriority()),
		nullableID(t.ParentID()),
		joinIDs(t.SubtaskIDs()),
		nullableTime(t.CompletedAt()),
		t.UpdatedAt().UTC(),
		t.Version()+1,
		t.ID().String(),
		t.Version(),
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if affected == 0 {
		return task.ErrOptimisticLocking
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *SQLTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	row := r.exec(ctx).QueryRow(ctx, taskColumns+` WHERE id = ?`, id.String())
	t, err := scanTask(row)
	if database.IsNoRows(err) {
		return nil, task.ErrTaskNotFound
	}
	return t, err
}

// FindByUserID retrieves all tasks for a user, oldest first.
func (r *SQLTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.list(ctx, taskColumns+` WHERE user_id = ? ORDER BY created_at, id`, userID.String())
}

// FindOpen retrieves every task of the user that is not done.
func (r *SQLTaskRepository) FindOpen(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.list(ctx, taskColumns+` WHERE user_id = ? AND status <> ? ORDER BY created_at, id`,
		userID.String(), task.StatusDone.String())
}

// Delete removes a task. Children keep their rows with parent_id cleared.
func (r *SQLTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.exec(ctx).Exec(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func (r *SQLTaskRepository) list(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := r.exec(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row database.Row) (*task.Task, error) {
	var (
		id, userID, title, description, status string
		quadrant, category, energy, subtaskIDs string
		estimateMinutes, version               int
		dueAt, completedAt                     *time.Time
		manualPriority, autoPriority           *int
		parentID                               *string
		createdAt, updatedAt                   time.Time
	)
	if err := row.Scan(
		&id, &userID, &title, &description, &status, &quadrant, &category, &energy,
		&estimateMinutes, &dueAt, &manualPriority, &autoPriority, &parentID, &subtaskIDs,
		&completedAt, &createdAt, &updatedAt, &version,
	); err != nil {
		return nil, err
	}

	p := task.RehydrateParams{
		Title:          title,
		Description:    description,
		Category:       value_objects.Category(category),
		Deadline:       utcPtr(dueAt),
		ManualPriority: manualPriority,
		AutoPriority:   autoPriority,
		CompletedAt:    utcPtr(completedAt),
		CreatedAt:      createdAt.UTC(),
		UpdatedAt:      updatedAt.UTC(),
		Version:        version,
	}

	var err error
	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("task %q: bad id: %w", id, err)
	}
	if p.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("task %s: bad user id: %w", id, err)
	}
	if p.Status, err = task.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}
	if p.Quadrant, err = value_objects.ParseQuadrant(quadrant); err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}
	if p.Energy, err = value_objects.ParseEnergyLevel(energy); err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}
	if p.Estimate, err = value_objects.EstimateFromMinutes(estimateMinutes); err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}
	if parentID != nil {
		parent, err := uuid.Parse(*parentID)
		if err != nil {
			return nil, fmt.Errorf("task %s: bad parent id: %w", id, err)
		}
		p.ParentID = &parent
	}
	if p.SubtaskIDs, err = splitIDs(subtaskIDs); err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}

	return task.Rehydrate(p), nil
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) ([]uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad subtask id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
