package database

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNoRows is returned when a query expected to return a row returns none.
	ErrNoRows = errors.New("no rows in result set")

	// ErrUnsupportedDriver is returned for drivers that are unknown or not linked in.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrNoTransaction is returned by unit-of-work calls made outside Begin.
	ErrNoTransaction = errors.New("no transaction in context")
)

// IsNoRows reports whether err means "no row", whichever driver produced it.
func IsNoRows(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, ErrNoRows)
}
