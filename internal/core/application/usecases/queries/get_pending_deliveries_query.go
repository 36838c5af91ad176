package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetPendingDeliveriesQueryIsNotConstructed = errors.New(
	"GetPendingDeliveriesQuery must be created via NewGetPendingDeliveriesQuery constructor",
)

// GetPendingDeliveriesQuery lists orders waiting for an agent: Pending or
// Confirmed, without delivery_agent_id. Aborted deliveries show up here again.
//
// Example:
//
//	query := NewGetPendingDeliveriesQuery()
//	pending, err := handler.Handle(ctx, query)
//	for _, p := range pending {
//	    fmt.Printf("%s %s %s\n", p.OrderNumber, p.Status, p.TotalAmount)
//	}
type GetPendingDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingDeliveriesQuery() GetPendingDeliveriesQuery {
	return GetPendingDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPendingDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingDeliveriesQueryIsNotConstructed)
}

type GetPendingDeliveriesQueryResponse struct {
	ID                    kernel.UUID
	OrderNumber           string
	Status                order.Status
	TotalAmount           kernel.Money
	CreatedAt             time.Time
	EstimatedDeliveryTime *time.Time
}
