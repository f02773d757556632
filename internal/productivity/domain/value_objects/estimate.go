package value_objects

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNegativeEstimate = errors.New("estimate must not be negative")
	ErrEstimateTooLong  = errors.New("estimate exceeds a working day")
)

// MaxEstimate caps a single task at one working day.
const MaxEstimate = 8 * time.Hour

// Estimate is the expected effort for a task, at minute granularity.
type Estimate struct {
	minutes int
}

// NewEstimate rounds d down to whole minutes.
func NewEstimate(d time.Duration) (Estimate, error) {
	if d < 0 {
		return Estimate{}, ErrNegativeEstimate
	}
	if d > MaxEstimate {
		return Estimate{}, ErrEstimateTooLong
	}
	return Estimate{minutes: int(d / time.Minute)}, nil
}

// EstimateFromMinutes is used when rehydrating stored values.
func EstimateFromMinutes(minutes int) (Estimate, error) {
	return NewEstimate(time.Duration(minutes) * time.Minute)
}

// ParseEstimate accepts Go durations ("1h30m") or a bare number of minutes ("45").
func ParseEstimate(s string) (Estimate, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Estimate{}, nil
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return EstimateFromMinutes(n)
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return Estimate{}, fmt.Errorf("parse estimate %q: %w", s, err)
	}
	return NewEstimate(d)
}

func (e Estimate) Minutes() int {
	return e.minutes
}

func (e Estimate) Duration() time.Duration {
	return time.Duration(e.minutes) * time.Minute
}

func (e Estimate) IsZero() bool {
	return e.minutes == 0
}

func (e Estimate) String() string {
	if e.minutes == 0 {
		return "-"
	}
	h, m := e.minutes/60, e.minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
