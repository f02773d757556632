package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStatus is returned for unknown status names.
var ErrInvalidStatus = errors.New("invalid task status")

// ErrInvalidTransition is returned when the workflow forbids a move.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status is a workflow column.
type Status string

const (
	StatusReady      Status = "ready"
	StatusInProgress Status = "in_progress"
	StatusWaiting    Status = "waiting"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

var statuses = [...]Status{StatusReady, StatusInProgress, StatusWaiting, StatusReview, StatusDone}

var transitions = map[Status][]Status{
	StatusReady:      {StatusInProgress, StatusWaiting, StatusDone},
	StatusInProgress: {StatusWaiting, StatusReview, StatusDone, StatusReady},
	StatusWaiting:    {StatusReady, StatusInProgress},
	StatusReview:     {StatusInProgress, StatusDone},
	StatusDone:       {StatusReady},
}

// Statuses lists every status in board order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses[:])
	return out
}

// ParseStatus accepts the canonical names plus "todo", "doing" and
// "completed", and tolerates dashes and case.
func ParseStatus(s string) (Status, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch name {
	case "todo":
		return StatusReady, nil
	case "doing", "started":
		return StatusInProgress, nil
	case "completed":
		return StatusDone, nil
	}
	status := Status(name)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// AllowedTransitions returns the statuses reachable from s.
func (s Status) AllowedTransitions() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether the workflow allows s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
