package services

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/order"
)

var (
	// ErrOrderNotAssignable is returned when the order is not Pending or Confirmed.
	ErrOrderNotAssignable = errors.New("order is not assignable")
	// ErrAgentUnavailable is returned when the agent is inactive or not Available.
	ErrAgentUnavailable = errors.New("delivery agent is unavailable")
)

// AssignmentMatcher validates a caller-chosen pairing of order and agent and
// applies it to both aggregates. Persisting both in one transaction is the
// caller's job; nothing is changed when a precondition fails.
//
// Example usage:
//
//	matcher := services.NewAssignmentMatcher()
//	if err := matcher.Match(o, a, time.Now()); errors.Is(err, services.ErrAgentUnavailable) {
//	    // pick another agent
//	}
type AssignmentMatcher struct{}

// NewAssignmentMatcher creates a matcher. It holds no state and is safe for
// concurrent use.
func NewAssignmentMatcher() AssignmentMatcher {
	return AssignmentMatcher{}
}

// Match dispatches o to a and reserves a.
//
// It fails with ErrOrderNotAssignable unless o is Pending or Confirmed, and
// with ErrAgentUnavailable unless a is active and Available. Both checks run
// before either aggregate is touched.
func (m AssignmentMatcher) Match(o *order.Order, a *agent.Agent, now time.Time) error {
	if err := errors.Join(o.Validate(), a.Validate()); err != nil {
		return err
	}

	if !o.Status().IsAssignable() {
		return fmt.Errorf("%w: order %s is %s", ErrOrderNotAssignable, o.ID(), o.Status())
	}
	if !a.IsEligible() {
		return fmt.Errorf("%w: agent %s is %s, active=%t", ErrAgentUnavailable, a.ID(), a.Status(), a.IsActive())
	}

	if err := a.Reserve(now); err != nil {
		return err
	}
	if err := o.Dispatch(a.ID(), now); err != nil {
		return err
	}
	return nil
}
