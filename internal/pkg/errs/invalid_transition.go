package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel wrapped by every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError reports a lifecycle move that the state machine of
// an aggregate does not allow.
type InvalidTransitionError struct {
	Entity string
	ID     any
	From   fmt.Stringer
	To     fmt.Stringer
	Cause  error
}

func NewInvalidTransitionError(entity string, id any, from fmt.Stringer, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity: entity,
		ID:     id,
		From:   from,
		To:     to,
	}
}

func NewInvalidTransitionErrorWithCause(
	entity string,
	id any,
	from fmt.Stringer,
	to fmt.Stringer,
	cause error,
) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity: entity,
		ID:     id,
		From:   from,
		To:     to,
		Cause:  cause,
	}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s %v cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.ID, e.From, e.To)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
