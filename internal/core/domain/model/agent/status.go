package agent

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status is the availability of a delivery agent.
//
// State transitions:
//
//	Offline <──> Available ──> Assigned ──> Available
//	             (direct edit)   (assign)    (delivered or aborted)
//
// Only Available and Offline are set directly. Assigned belongs to the
// assignment protocol.
type Status int

const (
	// Unknown is the zero value and catches uninitialized statuses.
	Unknown Status = iota

	// Available agents can be assigned to an order.
	Available

	// Assigned agents are on a delivery and cannot take another one.
	Assigned

	// Offline agents are registered but not working. New agents start here.
	Offline
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Available: "available",
		Assigned:  "assigned",
		Offline:   "offline",
	}
}

// ParseStatus reads the lowercase wire name of a status. Surrounding spaces and
// case are ignored. Unknown is never returned without an error.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid agent status", value))
}

// Validate reports a ValueIsInvalid error for Unknown and for out-of-range values.
func (s Status) Validate() error {
	switch s {
	case Available, Assigned, Offline:
		return nil
	case Unknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
}

// String returns the wire name, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
