package value_objects

import (
	"errors"
	"strings"
)

// EnergyLevel is a self-reported capacity tier, also used as a task's
// declared energy requirement.
type EnergyLevel string

const (
	EnergyNone   EnergyLevel = ""
	EnergyLow    EnergyLevel = "Low"
	EnergyMedium EnergyLevel = "Medium"
	EnergyHigh   EnergyLevel = "High"
)

var ErrInvalidEnergyLevel = errors.New("invalid energy level")

// ParseEnergyLevel is case-insensitive. Empty input yields EnergyNone.
func ParseEnergyLevel(s string) (EnergyLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return EnergyNone, nil
	case "low", "l":
		return EnergyLow, nil
	case "medium", "med", "m":
		return EnergyMedium, nil
	case "high", "h":
		return EnergyHigh, nil
	default:
		return EnergyNone, ErrInvalidEnergyLevel
	}
}

func (e EnergyLevel) String() string {
	if e == EnergyNone {
		return "none"
	}
	return string(e)
}

// IsSet reports whether an energy level was provided.
func (e EnergyLevel) IsSet() bool {
	return e != EnergyNone
}

func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyNone, EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}
