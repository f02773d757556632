package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/priority"
	"github.com/google/uuid"
)

// ParseTaskID parses a full task UUID.
func ParseTaskID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid task ID %q: %w", raw, err)
	}
	return id, nil
}

// ParseDeadlineFlag reads a --due value in the local time zone.
func ParseDeadlineFlag(raw string) (*time.Time, error) {
	deadline, err := priority.ParseDeadline(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid due date (use YYYY-MM-DD or YYYY-MM-DDTHH:MM): %w", err)
	}
	return deadline, nil
}

// PriorityBadge renders a score as "[72 High]".
func PriorityBadge(score *int) string {
	if score == nil {
		return "[-- unscored]"
	}
	return fmt.Sprintf("[%2d %s]", *score, priority.GetPriorityLabel(*score))
}

// StatusIcon returns a checkbox-style marker for a status.
func StatusIcon(status string) string {
	switch status {
	case "done":
		return "[x]"
	case "in_progress":
		return "[>]"
	case "waiting":
		return "[~]"
	case "review":
		return "[?]"
	default:
		return "[ ]"
	}
}

// DueMarker flags overdue deadlines and ones due today.
func DueMarker(deadline *time.Time, now time.Time) string {
	if deadline == nil {
		return ""
	}
	if deadline.Before(now) {
		return " [OVERDUE]"
	}
	if priority.CalendarDaysBetween(now, *deadline) == 0 {
		return " [TODAY]"
	}
	return ""
}

// ShortID returns the first eight characters of an ID.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}
