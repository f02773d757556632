// Package priority ranks tasks for "what should I work on next".
//
// A task's score is the sum of four independent sub-scores, clamped to
// [0, 100]:
//
//	eisenhower  0-40  quadrant of the task
//	deadline    0-30  calendar days until the deadline
//	energy      0-20  fit between the task and the caller's current energy
//	dependency  0-10  position relative to parent and child tasks
//
// A manual override replaces the computed score outright. Everything here is
// pure: callers pass task snapshots in and get numbers back.
package priority

import (
	"sort"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Snapshot is the view of a task the scorer needs. Parent and subtask
// references are plain IDs resolved against the collection passed alongside;
// a reference that cannot be resolved is ignored.
type Snapshot struct {
	ID             string
	Quadrant       value_objects.Quadrant
	Deadline       *time.Time
	Energy         value_objects.EnergyLevel
	ManualOverride *int
	IsSubtask      bool
	ParentID       *string
	SubtaskIDs     []string
	AutoCalculated *int
	Completed      bool
}

// Breakdown holds the individual sub-scores behind a total.
type Breakdown struct {
	Eisenhower int
	Deadline   int
	Energy     int
	Dependency int
	Total      int
	Overridden bool
}

// Scorer computes priorities relative to the time returned by its clock.
type Scorer struct {
	now func() time.Time
}

// NewScorer returns a scorer using clock as "now". A nil clock means time.Now.
func NewScorer(clock func() time.Time) *Scorer {
	if clock == nil {
		clock = time.Now
	}
	return &Scorer{now: clock}
}

var wallClock = NewScorer(nil)

// CalculateTaskPriority scores task against the wall clock. allTasks may be
// nil; it is only used to look up parents and subtasks.
func CalculateTaskPriority(task Snapshot, currentEnergy value_objects.EnergyLevel, allTasks []Snapshot) int {
	return wallClock.Calculate(task, currentEnergy, allTasks)
}

// SortTasksByPriority returns a copy of tasks ordered by descending priority.
func SortTasksByPriority(tasks []Snapshot, currentEnergy value_objects.EnergyLevel) []Snapshot {
	return wallClock.Sort(tasks, currentEnergy)
}

// GetNextRecommendedTask returns the highest ranked incomplete task. The
// boolean is false when every task is completed or tasks is empty.
func GetNextRecommendedTask(tasks []Snapshot, currentEnergy value_objects.EnergyLevel) (Snapshot, bool) {
	return wallClock.Next(tasks, currentEnergy)
}

// Calculate returns the task's priority score.
func (s *Scorer) Calculate(task Snapshot, currentEnergy value_objects.EnergyLevel, allTasks []Snapshot) int {
	return s.Score(task, currentEnergy, allTasks).Total
}

// Score returns the full breakdown for task.
func (s *Scorer) Score(task Snapshot, currentEnergy value_objects.EnergyLevel, allTasks []Snapshot) Breakdown {
	return s.score(task, currentEnergy, indexByID(allTasks))
}

func (s *Scorer) score(task Snapshot, currentEnergy value_objects.EnergyLevel, index map[string]Snapshot) Breakdown {
	if task.ManualOverride != nil {
		return Breakdown{Total: *task.ManualOverride, Overridden: true}
	}

	b := Breakdown{
		Eisenhower: EisenhowerScore(task.Quadrant),
		Deadline:   DeadlineScore(task.Deadline, s.now()),
		Energy:     EnergyScore(task.Energy, currentEnergy),
		Dependency: dependencyScore(task, index),
	}
	b.Total = clamp(b.Eisenhower + b.Deadline + b.Energy + b.Dependency)
	return b
}

// Sort returns a copy of tasks ordered by descending priority. A task's
// cached AutoCalculated value wins over a fresh computation; fresh
// computations see the whole input as dependency context. Equal scores keep
// their input order.
func (s *Scorer) Sort(tasks []Snapshot, currentEnergy value_objects.EnergyLevel) []Snapshot {
	type ranked struct {
		task  Snapshot
		score int
	}

	index := indexByID(tasks)
	items := make([]ranked, len(tasks))
	for i, t := range tasks {
		score := 0
		if t.AutoCalculated != nil {
			score = *t.AutoCalculated
		} else {
			score = s.score(t, currentEnergy, index).Total
		}
		items[i] = ranked{task: t, score: score}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	out := make([]Snapshot, len(items))
	for i, item := range items {
		out[i] = item.task
	}
	return out
}

// Next returns the first incomplete task in priority order.
func (s *Scorer) Next(tasks []Snapshot, currentEnergy value_objects.EnergyLevel) (Snapshot, bool) {
	open := make([]Snapshot, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			open = append(open, t)
		}
	}
	if len(open) == 0 {
		return Snapshot{}, false
	}
	return s.Sort(open, currentEnergy)[0], true
}

func indexByID(tasks []Snapshot) map[string]Snapshot {
	if len(tasks) == 0 {
		return nil
	}
	index := make(map[string]Snapshot, len(tasks))
	for _, t := range tasks {
		if _, dup := index[t.ID]; !dup {
			index[t.ID] = t
		}
	}
	return index
}

func clamp(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
