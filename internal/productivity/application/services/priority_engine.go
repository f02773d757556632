package services

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/priority"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/focusflow/pkg/observability"
	"github.com/google/uuid"
)

// Evaluation is a task's score together with the factors behind it.
type Evaluation struct {
	TaskID uuid.UUID
	// Computed holds the factor scores as if no override were set.
	Computed    priority.Breakdown
	Score       int
	Overridden  bool
	Explanation string
}

// Label names the priority band of the final score.
func (e Evaluation) Label() string { return priority.GetPriorityLabel(e.Score) }

// Color returns the presentation tag of the final score.
func (e Evaluation) Color() string { return priority.GetPriorityColor(e.Score) }

// PriorityEngine applies the priority scorer to task aggregates.
type PriorityEngine struct {
	scorer  *priority.Scorer
	metrics observability.Metrics
}

// NewPriorityEngine creates an engine. A nil clock means time.Now.
func NewPriorityEngine(clock func() time.Time) *PriorityEngine {
	return &PriorityEngine{
		scorer:  priority.NewScorer(clock),
		metrics: observability.NoopMetrics{},
	}
}

// WithMetrics reports scoring counts and timings to m. A nil m is ignored.
func (e *PriorityEngine) WithMetrics(m observability.Metrics) *PriorityEngine {
	if m != nil {
		e.metrics = m
	}
	return e
}

// Evaluate scores t with all as dependency context.
func (e *PriorityEngine) Evaluate(t *task.Task, energy value_objects.EnergyLevel, all []*task.Task) Evaluation {
	return e.evaluate(t.Snapshot(), energy, task.Snapshots(all))
}

// EvaluateAll scores every task in tasks against the rest of the list.
func (e *PriorityEngine) EvaluateAll(tasks []*task.Task, energy value_objects.EnergyLevel) []Evaluation {
	timer := observability.StartTimer("priority.evaluate_all").WithMetrics(e.metrics)
	defer timer.Stop()

	snaps := task.Snapshots(tasks)
	out := make([]Evaluation, len(snaps))
	for i, s := range snaps {
		out[i] = e.evaluate(s, energy, snaps)
	}
	e.metrics.Counter(observability.MetricPriorityTasksScored, int64(len(out)))
	return out
}

func (e *PriorityEngine) evaluate(s priority.Snapshot, energy value_objects.EnergyLevel, all []priority.Snapshot) Evaluation {
	override := s.ManualOverride
	s.ManualOverride = nil
	computed := e.scorer.Score(s, energy, all)

	ev := Evaluation{
		TaskID:   uuid.MustParse(s.ID),
		Computed: computed,
		Score:    computed.Total,
	}
	if override != nil {
		ev.Score = *override
		ev.Overridden = true
	}
	ev.Explanation = Explain(computed, override)
	return ev
}

// Rank orders tasks by descending priority. Equal scores keep their order.
func (e *PriorityEngine) Rank(tasks []*task.Task, energy value_objects.EnergyLevel) []*task.Task {
	byID := make(map[string]*task.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID().String()] = t
	}

	sorted := e.scorer.Sort(task.Snapshots(tasks), energy)
	out := make([]*task.Task, len(sorted))
	for i, s := range sorted {
		out[i] = byID[s.ID]
	}
	return out
}

// Next returns the highest ranked task that is not done.
func (e *PriorityEngine) Next(tasks []*task.Task, energy value_objects.EnergyLevel) (*task.Task, bool) {
	next, ok := e.scorer.Next(task.Snapshots(tasks), energy)
	if !ok {
		return nil, false
	}
	for _, t := range tasks {
		if t.ID().String() == next.ID {
			return t, true
		}
	}
	return nil, false
}

// Explain renders a breakdown as "eisenhower=40 deadline=28 energy=20
// dependency=5", followed by the override when one is set.
func Explain(b priority.Breakdown, override *int) string {
	s := fmt.Sprintf("eisenhower=%d deadline=%d energy=%d dependency=%d",
		b.Eisenhower, b.Deadline, b.Energy, b.Dependency)
	if override != nil {
		s += fmt.Sprintf(" override=%d", *override)
	}
	return s
}
