package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAbortDeliveryCommandIsNotConstructed = errors.New(
	"AbortDeliveryCommand must be created via NewAbortDeliveryCommand constructor",
)

// AbortDeliveryCommand takes a Dispatched order back from its agent.
type AbortDeliveryCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAbortDeliveryCommand(orderID kernel.UUID) (AbortDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AbortDeliveryCommand{}, err
	}

	return AbortDeliveryCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AbortDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAbortDeliveryCommandIsNotConstructed)
}

func (c AbortDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}
