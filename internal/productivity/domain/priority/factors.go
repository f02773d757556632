package priority

import (
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
)

const (
	neutralEisenhower = 15
	neutralEnergy     = 10
	neutralDependency = 5

	noDeadlineScore = 5
	overdueScore    = 30

	exactEnergyMatch    = 20
	mediumTaskEnergy    = 15
	energyMismatchScore = 5

	parentBlockedScore = 3
)

var eisenhowerScores = map[value_objects.Quadrant]int{
	value_objects.QuadrantUrgentImportant:       40,
	value_objects.QuadrantImportantNotUrgent:    30,
	value_objects.QuadrantUrgentNotImportant:    20,
	value_objects.QuadrantNotUrgentNotImportant: 10,
}

type band struct {
	limit int
	score int
}

// deadlineBands are checked in order; the first band whose limit is >= the
// number of days remaining applies.
var deadlineBands = []band{
	{limit: 1, score: 28},
	{limit: 3, score: 24},
	{limit: 7, score: 18},
	{limit: 14, score: 12},
	{limit: 30, score: 8},
}

const farDeadlineScore = 5

type energyPair struct {
	current value_objects.EnergyLevel
	task    value_objects.EnergyLevel
}

var energyOverrides = map[energyPair]int{
	{current: value_objects.EnergyHigh, task: value_objects.EnergyMedium}: 18,
	{current: value_objects.EnergyMedium, task: value_objects.EnergyLow}:  16,
	{current: value_objects.EnergyLow, task: value_objects.EnergyMedium}:  8,
}

// parentBands map a parent's cached score to the subtask's dependency score.
var parentBands = []band{
	{limit: 70, score: 10},
	{limit: 50, score: 8},
}

const lowParentScore = 6

// EisenhowerScore returns 0-40 for the quadrant, 15 when unset.
func EisenhowerScore(q value_objects.Quadrant) int {
	if score, ok := eisenhowerScores[q]; ok {
		return score
	}
	return neutralEisenhower
}

// DeadlineScore returns 0-30. Anything strictly before now is overdue and
// scores the maximum. Otherwise days are counted as calendar dates in now's
// location, so 23 hours that cross midnight count as one day.
func DeadlineScore(deadline *time.Time, now time.Time) int {
	if deadline == nil {
		return noDeadlineScore
	}
	if deadline.Before(now) {
		return overdueScore
	}

	days := CalendarDaysBetween(now, *deadline)
	for _, b := range deadlineBands {
		if days <= b.limit {
			return b.score
		}
	}
	return farDeadlineScore
}

// CalendarDaysBetween returns the number of date boundaries from from to to,
// evaluated in from's location.
func CalendarDaysBetween(from, to time.Time) int {
	to = to.In(from.Location())
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// EnergyScore returns 0-20 for how well the task's energy requirement fits
// the current energy. Rules are applied in this order: missing data, exact
// match, the explicit override pairs, a Medium task, everything else.
func EnergyScore(task, current value_objects.EnergyLevel) int {
	if !task.IsSet() || !current.IsSet() {
		return neutralEnergy
	}
	if task == current {
		return exactEnergyMatch
	}
	if score, ok := energyOverrides[energyPair{current: current, task: task}]; ok {
		return score
	}
	if task == value_objects.EnergyMedium {
		return mediumTaskEnergy
	}
	return energyMismatchScore
}

func dependencyScore(task Snapshot, index map[string]Snapshot) int {
	if len(index) == 0 {
		return neutralDependency
	}

	if task.IsSubtask && task.ParentID != nil {
		if parent, ok := index[*task.ParentID]; ok {
			parentScore := 0
			if parent.AutoCalculated != nil {
				parentScore = *parent.AutoCalculated
			}
			for _, b := range parentBands {
				if parentScore >= b.limit {
					return b.score
				}
			}
			return lowParentScore
		}
	}

	for _, id := range task.SubtaskIDs {
		if child, ok := index[id]; ok && !child.Completed {
			return parentBlockedScore
		}
	}

	return neutralDependency
}
