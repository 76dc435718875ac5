package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a select-by-id matches no row.
	ErrNotFound = errors.New("no results found")

	// ErrConstraint is returned when PostgreSQL rejects a statement because of
	// the data it carries: foreign key, not null, unique or check violations,
	// and values that cannot be converted to the column type.
	ErrConstraint = errors.New("constraint violation")
)

// PostgreSQL error codes
const (
	invalidTextRepresentationCode = "22P02"
	numericValueOutOfRangeCode    = "22003"
	notNullViolationCode          = "23502"
	foreignKeyViolationCode       = "23503"
	uniqueViolationCode           = "23505"
	checkViolationCode            = "23514"
)

// mapError classifies a driver error. Errors that do not match a known
// class are returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case foreignKeyViolationCode, uniqueViolationCode, checkViolationCode:
			return fmt.Errorf("%w (%s): %v", ErrConstraint, pqErr.Constraint, err)
		case notNullViolationCode:
			return fmt.Errorf("%w (%s): %v", ErrConstraint, pqErr.Column, err)
		case invalidTextRepresentationCode, numericValueOutOfRangeCode:
			return fmt.Errorf("%w: %v", ErrConstraint, err)
		}
	}

	return err
}
