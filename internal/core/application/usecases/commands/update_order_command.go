package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// ErrStatusEditIsAdminOnly is the cause reported when a customer asks for any
// status other than CANCELLED, or names an agent.
var ErrStatusEditIsAdminOnly = errors.New("customers may only cancel their orders")

// UpdateOrderCommand edits an order. Every field is optional; nil leaves it as is.
//
// An agentID without a status means DISPATCHED. An agentID next to any other
// status is rejected. Customers may only edit instructions and request
// CANCELLED; every other status and the agent are admin edits.
type UpdateOrderCommand struct {
	orderID      kernel.UUID
	requester    customer.Principal
	instructions *string
	status       *order.Status
	agentID      *kernel.UUID

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(
	orderID kernel.UUID,
	requester customer.Principal,
	instructions *string,
	status *order.Status,
	agentID *kernel.UUID,
) (UpdateOrderCommand, error) {
	var problems []error
	problems = append(problems, orderID.Validate(), requester.Validate())

	if instructions != nil && len(*instructions) > order.MaxInstructionsLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"delivery_instructions length", len(*instructions), 0, order.MaxInstructionsLength))
	}
	if status != nil {
		problems = append(problems, status.Validate())
	}
	if !requester.IsAdmin() {
		if status != nil && *status != order.Cancelled {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("status", ErrStatusEditIsAdminOnly))
		}
		if agentID != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("delivery_agent_id", ErrStatusEditIsAdminOnly))
		}
	}
	if agentID != nil {
		problems = append(problems, agentID.Validate())
		if status == nil {
			dispatched := order.Dispatched
			status = &dispatched
		} else if *status != order.Dispatched {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"delivery_agent_id", fmt.Errorf("only allowed with status %s, got %s", order.Dispatched, *status)))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		orderID:      orderID,
		requester:    requester,
		instructions: instructions,
		status:       status,
		agentID:      agentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) Requester() customer.Principal {
	return c.requester
}

func (c UpdateOrderCommand) Instructions() *string {
	return c.instructions
}

func (c UpdateOrderCommand) Status() *order.Status {
	return c.status
}

func (c UpdateOrderCommand) AgentID() *kernel.UUID {
	return c.agentID
}
