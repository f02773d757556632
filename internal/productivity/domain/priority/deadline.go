package priority

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDeadline is returned for deadline input that is neither empty nor
// a recognised date or timestamp.
var ErrInvalidDeadline = errors.New("invalid deadline")

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

const dateLayout = "2006-01-02"

// ParseDeadline parses raw in the local time zone. See ParseDeadlineIn.
func ParseDeadline(raw string) (*time.Time, error) {
	return ParseDeadlineIn(raw, time.Local)
}

// ParseDeadlineIn parses a deadline. Empty input means no deadline and
// returns nil. A bare date ("2006-01-02") is due at the last second of that
// day in loc; timestamps without a zone are read in loc.
func ParseDeadlineIn(raw string, loc *time.Location) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}

	if d, err := time.ParseInLocation(dateLayout, trimmed, loc); err == nil {
		endOfDay := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, loc)
		return &endOfDay, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidDeadline, raw)
}
