package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand withdraws an order that has not been dispatched yet.
type CancelOrderCommand struct {
	orderID   kernel.UUID
	requester customer.Principal

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, requester customer.Principal) (CancelOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), requester.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID:   orderID,
		requester: requester,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) Requester() customer.Principal {
	return c.requester
}
