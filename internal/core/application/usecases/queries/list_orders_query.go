package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through the orders visible to the requester: their own
// orders, or every order for admins. Status is an optional filter.
//
// Example:
//
//	pending := order.Pending
//	query, err := NewListOrdersQuery(principal, 1, 10, &pending)
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("%d of %d orders\n", len(page.Orders), page.Total)
type ListOrdersQuery struct {
	requester  customer.Principal
	pagination Pagination
	status     *order.Status

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(
	requester customer.Principal,
	page int,
	size int,
	status *order.Status,
) (ListOrdersQuery, error) {
	pagination, pageErr := NewPagination(page, size)

	var statusErr error
	if status != nil {
		statusErr = status.Validate()
	}

	if err := errors.Join(requester.Validate(), pageErr, statusErr); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		requester:  requester,
		pagination: pagination,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Requester() customer.Principal {
	return q.requester
}

func (q ListOrdersQuery) Pagination() Pagination {
	return q.pagination
}

func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID                    kernel.UUID
	OrderNumber           string
	CustomerID            int64
	DeliveryAddressID     int64
	DeliveryAgentID       *kernel.UUID
	Status                order.Status
	Subtotal              kernel.Money
	TaxAmount             kernel.Money
	DeliveryFee           kernel.Money
	TotalAmount           kernel.Money
	DeliveryInstructions  string
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type ListOrdersQueryResponse struct {
	Orders []OrderSummary
	Total  int64
	Page   int
	Size   int
}
