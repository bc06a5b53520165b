package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrConflict is returned when an insert breaks a primary-key or
// unique-index constraint. Callers that want ignore-on-conflict semantics
// check for it with errors.Is.
var ErrConflict = errors.New("constraint conflict")

// mapError translates driver-level constraint violations to ErrConflict so
// callers don't depend on sqlite3 error codes.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
