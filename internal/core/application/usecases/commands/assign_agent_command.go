package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand pairs a caller-chosen order with a caller-chosen agent.
//
// Example:
//
//	cmd, err := NewAssignAgentCommand(orderID, agentID)
//	o, a, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrOrderNotAssignable):
//	    // already dispatched or closed
//	case errors.Is(err, services.ErrAgentUnavailable):
//	    // busy, offline or deactivated
//	}
type AssignAgentCommand struct {
	orderID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignAgentCommand(orderID kernel.UUID, agentID kernel.UUID) (AssignAgentCommand, error) {
	if err := errors.Join(orderID.Validate(), agentID.Validate()); err != nil {
		return AssignAgentCommand{}, err
	}

	return AssignAgentCommand{
		orderID: orderID,
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

func (c AssignAgentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}
