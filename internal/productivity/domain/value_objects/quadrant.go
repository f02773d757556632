package value_objects

import (
	"errors"
	"strings"
)

// Quadrant is a position in the Eisenhower matrix.
type Quadrant string

const (
	QuadrantNone                  Quadrant = ""
	QuadrantUrgentImportant       Quadrant = "Urgent & Important"
	QuadrantImportantNotUrgent    Quadrant = "Important & Not Urgent"
	QuadrantUrgentNotImportant    Quadrant = "Urgent & Not Important"
	QuadrantNotUrgentNotImportant Quadrant = "Not Urgent & Not Important"
)

var ErrInvalidQuadrant = errors.New("invalid eisenhower quadrant")

// quadrantAliases maps short CLI spellings onto quadrants.
var quadrantAliases = map[string]Quadrant{
	"q1":               QuadrantUrgentImportant,
	"do":               QuadrantUrgentImportant,
	"urgent-important": QuadrantUrgentImportant,
	"q2":               QuadrantImportantNotUrgent,
	"schedule":         QuadrantImportantNotUrgent,
	"important":        QuadrantImportantNotUrgent,
	"q3":               QuadrantUrgentNotImportant,
	"delegate":         QuadrantUrgentNotImportant,
	"urgent":           QuadrantUrgentNotImportant,
	"q4":               QuadrantNotUrgentNotImportant,
	"eliminate":        QuadrantNotUrgentNotImportant,
	"neither":          QuadrantNotUrgentNotImportant,
}

// Quadrants lists the four quadrants, most pressing first.
func Quadrants() []Quadrant {
	return []Quadrant{
		QuadrantUrgentImportant,
		QuadrantImportantNotUrgent,
		QuadrantUrgentNotImportant,
		QuadrantNotUrgentNotImportant,
	}
}

// ParseQuadrant accepts the full label, a short alias, or an empty string.
func ParseQuadrant(s string) (Quadrant, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return QuadrantNone, nil
	}
	for _, q := range Quadrants() {
		if strings.EqualFold(trimmed, string(q)) {
			return q, nil
		}
	}
	if q, ok := quadrantAliases[strings.ToLower(trimmed)]; ok {
		return q, nil
	}
	return QuadrantNone, ErrInvalidQuadrant
}

func (q Quadrant) String() string {
	if q == QuadrantNone {
		return "none"
	}
	return string(q)
}

// IsSet reports whether a quadrant was assigned.
func (q Quadrant) IsSet() bool {
	return q != QuadrantNone
}

// IsValid reports whether q is unset or one of the four quadrants.
func (q Quadrant) IsValid() bool {
	if q == QuadrantNone {
		return true
	}
	for _, known := range Quadrants() {
		if q == known {
			return true
		}
	}
	return false
}
