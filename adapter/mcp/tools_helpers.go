package mcp

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/priority"
	"github.com/google/uuid"
)

var errNoDatabase = errors.New("requires database connection")

func parseUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.UUID{}, errors.New("id is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}

func parseOptionalUUID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseUUID(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseDeadline accepts RFC 3339 timestamps and bare dates. Dates and
// zone-less timestamps are read in the server's zone, the same zone the
// scorer counts deadline days in.
func parseDeadline(value string) (*time.Time, error) {
	deadline, err := priority.ParseDeadlineIn(value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline, use YYYY-MM-DD or RFC 3339: %w", err)
	}
	return deadline, nil
}
