package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its item snapshot. Orders of other
// customers look like missing ones unless the requester is an admin.
type GetOrderQuery struct {
	requester customer.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(requester customer.Principal, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(requester.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		requester: requester,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Requester() customer.Principal {
	return q.requester
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemView is one line of the item snapshot, in placement order.
type OrderItemView struct {
	ID                  kernel.UUID
	MenuItemID          int64
	ItemName            string
	ItemPrice           kernel.Money
	Quantity            int
	SpecialInstructions string
}

type GetOrderQueryResponse struct {
	OrderSummary
	Items []OrderItemView
}
