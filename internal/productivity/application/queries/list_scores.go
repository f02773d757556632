package queries

import (
	"context"
	"sort"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// ScoreDTO is a stored priority score.
type ScoreDTO struct {
	TaskID      uuid.UUID `json:"task_id"`
	Score       int       `json:"score"`
	Label       string    `json:"label"`
	Overridden  bool      `json:"overridden"`
	Energy      string    `json:"energy,omitempty"`
	Explanation string    `json:"explanation"`
}

// ListScoresHandler returns the scores written by the last recalculation,
// highest first.
type ListScoresHandler struct {
	scoreRepo task.PriorityScoreRepository
}

func NewListScoresHandler(scoreRepo task.PriorityScoreRepository) *ListScoresHandler {
	return &ListScoresHandler{scoreRepo: scoreRepo}
}

func (h *ListScoresHandler) Handle(ctx context.Context, userID uuid.UUID, limit int) ([]ScoreDTO, error) {
	scores, err := h.scoreRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}

	out := make([]ScoreDTO, len(scores))
	for i, s := range scores {
		out[i] = ScoreDTO{
			TaskID:      s.TaskID,
			Score:       s.Score,
			Label:       s.Label(),
			Overridden:  s.Breakdown.Overridden,
			Energy:      string(s.CurrentEnergy),
			Explanation: s.Explanation,
		}
	}
	return out, nil
}
