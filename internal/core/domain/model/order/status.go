package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown catches uninitialized values and is never persisted.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	Pending

	// Confirmed means the restaurant accepted the order; it waits for an agent.
	Confirmed

	// Dispatched means an agent was assigned and is delivering the order.
	Dispatched

	// Delivered is terminal. The order reached the customer.
	Delivered

	// Cancelled is terminal. The order was withdrawn before dispatch.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Dispatched: "dispatched",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// ParseStatus maps the wire representation ("pending", "DISPATCHED", ...) to a Status.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", value))
}

// Validate reports whether s is one of the five lifecycle states.
func (s Status) Validate() error {
	switch s {
	case Pending, Confirmed, Dispatched, Delivered, Cancelled:
		return nil
	case Unknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsAssignable reports whether an agent may be assigned to an order in s.
func (s Status) IsAssignable() bool {
	return s == Pending || s == Confirmed
}

// HasAgent reports whether an order in s must reference a delivery agent.
func (s Status) HasAgent() bool {
	return s == Dispatched || s == Delivered
}

// CanTransitionTo is the transition table of the order lifecycle.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case Pending:
		return next == Confirmed || next == Dispatched || next == Cancelled
	case Confirmed:
		return next == Dispatched || next == Cancelled
	case Dispatched:
		return next == Delivered || next == Confirmed
	case Delivered, Cancelled, Unknown:
		return false
	}
	return false
}
