package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/priority"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLPriorityScoreRepository stores one score record per task.
type SQLPriorityScoreRepository struct {
	conn database.Connection
}

// NewSQLPriorityScoreRepository creates a new repository.
func NewSQLPriorityScoreRepository(conn database.Connection) *SQLPriorityScoreRepository {
	return &SQLPriorityScoreRepository{conn: conn}
}

// Save upserts a priority score.
func (r *SQLPriorityScoreRepository) Save(ctx context.Context, score task.PriorityScore) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `INSERT INTO priority_scores (
    task_id, user_id, score, eisenhower_score, deadline_score, energy_score,
    dependency_score, overridden, current_energy, explanation, calculated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (task_id) DO UPDATE SET
    user_id = excluded.user_id,
    score = excluded.score,
    eisenhower_score = excluded.eisenhower_score,
    deadline_score = excluded.deadline_score,
    energy_score = excluded.energy_score,
    dependency_score = excluded.dependency_score,
    overridden = excluded.overridden,
    current_energy = excluded.current_energy,
    explanation = excluded.explanation,
    calculated_at = excluded.calculated_at`,
		score.TaskID.String(),
		score.UserID.String(),
		score.Score,
		score.Breakdown.Eisenhower,
		score.Breakdown.Deadline,
		score.Breakdown.Energy,
		score.Breakdown.Dependency,
		score.Breakdown.Overridden,
		string(score.CurrentEnergy),
		score.Explanation,
		score.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save priority score: %w", err)
	}
	return nil
}

// ListByUser returns all scores for a user, highest first.
func (r *SQLPriorityScoreRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]task.PriorityScore, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, `SELECT
    task_id, user_id, score, eisenhower_score, deadline_score, energy_score,
    dependency_score, overridden, current_energy, explanation, calculated_at
FROM priority_scores
WHERE user_id = ?
ORDER BY score DESC, task_id`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []task.PriorityScore
	for rows.Next() {
		var (
			taskID, owner, energy string
			s                     task.PriorityScore
			b                     priority.Breakdown
			calculatedAt          time.Time
		)
		if err := rows.Scan(
			&taskID, &owner, &s.Score, &b.Eisenhower, &b.Deadline, &b.Energy,
			&b.Dependency, &b.Overridden, &energy, &s.Explanation, &calculatedAt,
		); err != nil {
			return nil, err
		}
		if s.TaskID, err = uuid.Parse(taskID); err != nil {
			return nil, fmt.Errorf("priority score: bad task id %q: %w", taskID, err)
		}
		if s.UserID, err = uuid.Parse(owner); err != nil {
			return nil, fmt.Errorf("priority score %s: bad user id: %w", taskID, err)
		}
		if s.CurrentEnergy, err = value_objects.ParseEnergyLevel(energy); err != nil {
			return nil, fmt.Errorf("priority score %s: %w", taskID, err)
		}
		b.Total = b.Eisenhower + b.Deadline + b.Energy + b.Dependency
		s.Breakdown = b
		s.UpdatedAt = calculatedAt.UTC()
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

// DeleteByUser drops every score of the user.
func (r *SQLPriorityScoreRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `DELETE FROM priority_scores WHERE user_id = ?`, userID.String())
	if err != nil {
		return fmt.Errorf("delete priority scores: %w", err)
	}
	return nil
}
