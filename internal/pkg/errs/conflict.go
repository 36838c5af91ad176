package errs

import (
	"errors"
	"fmt"
)

// ErrConflict is the sentinel wrapped by every ConflictError.
var ErrConflict = errors.New("concurrent modification")

// ConflictError reports that an aggregate was changed by another transaction
// between read and write. The caller may retry the whole operation.
type ConflictError struct {
	Entity  string
	ID      any
	Version int64
}

func NewConflictError(entity string, id any, version int64) *ConflictError {
	return &ConflictError{
		Entity:  entity,
		ID:      id,
		Version: version,
	}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %v at version %d", ErrConflict, e.Entity, e.ID, e.Version)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
