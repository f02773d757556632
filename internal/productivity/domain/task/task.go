package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/priority"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/focusflow/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle          = errors.New("task title cannot be empty")
	ErrTaskAlreadyComplete = errors.New("task is already completed")
	ErrInvalidOverride     = errors.New("priority override must be between 0 and 100")
	ErrInvalidScore        = errors.New("priority score must be between 0 and 100")
	ErrSelfReference       = errors.New("task cannot be its own parent or subtask")
)

// Updatable field names reported in TaskUpdated.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldQuadrant    = "quadrant"
	FieldDeadline    = "deadline"
	FieldEnergy      = "energy"
	FieldEstimate    = "estimate"
	FieldSubtasks    = "subtasks"
	FieldParent      = "parent"
)

// Task is a unit of work. Parent and subtask links are plain IDs; the other
// side may be missing and is then ignored by scoring.
type Task struct {
	domain.BaseAggregateRoot
	userID         uuid.UUID
	title          string
	description    string
	category       value_objects.Category
	quadrant       value_objects.Quadrant
	deadline       *time.Time
	energy         value_objects.EnergyLevel
	estimate       value_objects.Estimate
	manualPriority *int
	autoPriority   *int
	parentID       *uuid.UUID
	subtaskIDs     []uuid.UUID
	status         Status
	completedAt    *time.Time

	pendingFields []string
}

// NewTask creates a ready task and raises TaskCreated.
func NewTask(userID uuid.UUID, title string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		status:            StatusReady,
	}
	t.AddDomainEvent(NewTaskCreated(t.ID(), t.title))
	return t, nil
}

// RehydrateParams carries a stored task back into the domain.
type RehydrateParams struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Title          string
	Description    string
	Category       value_objects.Category
	Quadrant       value_objects.Quadrant
	Deadline       *time.Time
	Energy         value_objects.EnergyLevel
	Estimate       value_objects.Estimate
	ManualPriority *int
	AutoPriority   *int
	ParentID       *uuid.UUID
	SubtaskIDs     []uuid.UUID
	Status         Status
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int
}

// Rehydrate rebuilds a task without raising events.
func Rehydrate(p RehydrateParams) *Task {
	entity := domain.RehydrateBaseEntity(p.ID, p.CreatedAt, p.UpdatedAt)
	status := p.Status
	if !status.IsValid() {
		status = StatusReady
	}
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(entity, p.Version),
		userID:            p.UserID,
		title:             p.Title,
		description:       p.Description,
		category:          p.Category,
		quadrant:          p.Quadrant,
		deadline:          p.Deadline,
		energy:            p.Energy,
		estimate:          p.Estimate,
		manualPriority:    p.ManualPriority,
		autoPriority:      p.AutoPriority,
		parentID:          p.ParentID,
		subtaskIDs:        append([]uuid.UUID(nil), p.SubtaskIDs...),
		status:            status,
		completedAt:       p.CompletedAt,
	}
}

func (t *Task) UserID() uuid.UUID                 { return t.userID }
func (t *Task) Title() string                     { return t.title }
func (t *Task) Description() string               { return t.description }
func (t *Task) Category() value_objects.Category  { return t.category }
func (t *Task) Quadrant() value_objects.Quadrant  { return t.quadrant }
func (t *Task) Deadline() *time.Time              { return t.deadline }
func (t *Task) Energy() value_objects.EnergyLevel { return t.energy }
func (t *Task) Estimate() value_objects.Estimate  { return t.estimate }
func (t *Task) ManualPriority() *int              { return t.manualPriority }
func (t *Task) AutoPriority() *int                { return t.autoPriority }
func (t *Task) ParentID() *uuid.UUID              { return t.parentID }
func (t *Task) Status() Status                    { return t.status }
func (t *Task) CompletedAt() *time.Time           { return t.completedAt }
func (t *Task) IsCompleted() bool                 { return t.status == StatusDone }
func (t *Task) IsSubtask() bool                   { return t.parentID != nil }
func (t *Task) SubtaskIDs() []uuid.UUID           { return append([]uuid.UUID(nil), t.subtaskIDs...) }

// SetTitle updates the task title. Blank titles are rejected.
func (t *Task) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if title != t.title {
		t.title = title
		t.changed(FieldTitle)
	}
	return nil
}

// SetDescription updates the task description.
func (t *Task) SetDescription(description string) {
	description = strings.TrimSpace(description)
	if description != t.description {
		t.description = description
		t.changed(FieldDescription)
	}
}

// SetCategory moves the task into one of the fixed categories.
func (t *Task) SetCategory(c value_objects.Category) error {
	if !c.IsValid() {
		return fmt.Errorf("%w: %q", value_objects.ErrInvalidCategory, c)
	}
	if c != t.category {
		t.category = c
		t.changed(FieldCategory)
	}
	return nil
}

// SetQuadrant updates the Eisenhower quadrant. QuadrantNone clears it.
func (t *Task) SetQuadrant(q value_objects.Quadrant) error {
	if !q.IsValid() {
		return fmt.Errorf("%w: %q", value_objects.ErrInvalidQuadrant, q)
	}
	if q != t.quadrant {
		t.quadrant = q
		t.changed(FieldQuadrant)
	}
	return nil
}

// SetDeadline sets or, with nil, clears the deadline.
func (t *Task) SetDeadline(deadline *time.Time) {
	if sameTime(t.deadline, deadline) {
		return
	}
	if deadline != nil {
		d := *deadline
		deadline = &d
	}
	t.deadline = deadline
	t.changed(FieldDeadline)
}

// SetEnergy updates the energy the task requires.
func (t *Task) SetEnergy(e value_objects.EnergyLevel) error {
	if !e.IsValid() {
		return fmt.Errorf("%w: %q", value_objects.ErrInvalidEnergyLevel, e)
	}
	if e != t.energy {
		t.energy = e
		t.changed(FieldEnergy)
	}
	return nil
}

// SetEstimate updates the estimated duration.
func (t *Task) SetEstimate(e value_objects.Estimate) {
	if e != t.estimate {
		t.estimate = e
		t.changed(FieldEstimate)
	}
}

// FlushUpdates raises one TaskUpdated for the setters called since the last
// flush and reports whether anything changed.
func (t *Task) FlushUpdates() bool {
	if len(t.pendingFields) == 0 {
		return false
	}
	t.AddDomainEvent(NewTaskUpdated(t.ID(), t.pendingFields))
	t.pendingFields = nil
	return true
}

func (t *Task) changed(field string) {
	for _, f := range t.pendingFields {
		if f == field {
			return
		}
	}
	t.pendingFields = append(t.pendingFields, field)
	t.Touch()
}

// TransitionTo moves the task along the workflow. Moving to the current
// status is a no-op. Reaching done stamps completedAt; leaving done clears it.
func (t *Task) TransitionTo(to Status) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if to == t.status {
		return nil
	}
	if !t.status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.status, to)
	}
	t.move(to)
	return nil
}

// Complete marks the task done from any open status. Unlike TransitionTo
// it does not consult the workflow table.
func (t *Task) Complete() error {
	if t.IsCompleted() {
		return ErrTaskAlreadyComplete
	}
	t.move(StatusDone)
	return nil
}

func (t *Task) move(to Status) {
	from := t.status
	t.status = to
	t.AddDomainEvent(NewTaskStatusChanged(t.ID(), from, to))

	switch {
	case to == StatusDone:
		now := time.Now().UTC()
		t.completedAt = &now
		t.AddDomainEvent(NewTaskCompleted(t.ID(), now))
	case from == StatusDone:
		t.completedAt = nil
	}
}

// SetManualPriority pins the score. nil clears the override.
func (t *Task) SetManualPriority(score *int) error {
	if score != nil && (*score < priority.MinScore || *score > priority.MaxScore) {
		return fmt.Errorf("%w: %d", ErrInvalidOverride, *score)
	}
	if sameInt(t.manualPriority, score) {
		return nil
	}
	if score != nil {
		v := *score
		score = &v
	}
	t.manualPriority = score
	t.AddDomainEvent(NewPriorityOverridden(t.ID(), score))
	return nil
}

// RecordAutoPriority caches a computed score. An unchanged score raises no
// event.
func (t *Task) RecordAutoPriority(score int) error {
	if score < priority.MinScore || score > priority.MaxScore {
		return fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}
	if t.autoPriority != nil && *t.autoPriority == score {
		return nil
	}
	previous := t.autoPriority
	t.autoPriority = &score
	t.AddDomainEvent(NewPriorityRecalculated(t.ID(), score, previous))
	return nil
}

// AddSubtask records a child reference. Adding an existing child is a no-op.
func (t *Task) AddSubtask(id uuid.UUID) error {
	if id == t.ID() {
		return ErrSelfReference
	}
	for _, existing := range t.subtaskIDs {
		if existing == id {
			return nil
		}
	}
	t.subtaskIDs = append(t.subtaskIDs, id)
	t.changed(FieldSubtasks)
	return nil
}

// RemoveSubtask drops a child reference if present.
func (t *Task) RemoveSubtask(id uuid.UUID) {
	for i, existing := range t.subtaskIDs {
		if existing == id {
			t.subtaskIDs = append(t.subtaskIDs[:i:i], t.subtaskIDs[i+1:]...)
			t.changed(FieldSubtasks)
			return
		}
	}
}

// AttachToParent makes the task a subtask of parentID.
func (t *Task) AttachToParent(parentID uuid.UUID) error {
	if parentID == t.ID() {
		return ErrSelfReference
	}
	if t.parentID != nil && *t.parentID == parentID {
		return nil
	}
	t.parentID = &parentID
	t.changed(FieldParent)
	return nil
}

// Priority returns the score shown to users: the override when set,
// otherwise the cached computation.
func (t *Task) Priority() (int, bool) {
	if t.manualPriority != nil {
		return *t.manualPriority, true
	}
	if t.autoPriority != nil {
		return *t.autoPriority, true
	}
	return 0, false
}

// Snapshot is the scorer's view of the task. AutoCalculated is the cached
// computation only; the override travels separately in ManualOverride.
func (t *Task) Snapshot() priority.Snapshot {
	s := priority.Snapshot{
		ID:             t.ID().String(),
		Quadrant:       t.quadrant,
		Deadline:       t.deadline,
		Energy:         t.energy,
		ManualOverride: t.manualPriority,
		AutoCalculated: t.autoPriority,
		IsSubtask:      t.parentID != nil,
		Completed:      t.IsCompleted(),
	}
	if t.parentID != nil {
		parent := t.parentID.String()
		s.ParentID = &parent
	}
	if len(t.subtaskIDs) > 0 {
		s.SubtaskIDs = make([]string, len(t.subtaskIDs))
		for i, id := range t.subtaskIDs {
			s.SubtaskIDs[i] = id.String()
		}
	}
	return s
}

// Snapshots converts a batch for the scorer.
func Snapshots(tasks []*Task) []priority.Snapshot {
	out := make([]priority.Snapshot, len(tasks))
	for i, t := range tasks {
		out[i] = t.Snapshot()
	}
	return out
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
