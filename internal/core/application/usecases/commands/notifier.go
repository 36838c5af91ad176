package commands

import (
	"context"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/order"
)

// Notifier is told about committed lifecycle changes. Implementations are best
// effort: they never fail the operation that triggered them, so the methods
// return nothing.
type Notifier interface {
	OrderPlaced(ctx context.Context, o *order.Order)
	OrderStatusChanged(ctx context.Context, o *order.Order, previous order.Status)
	AgentAssigned(ctx context.Context, o *order.Order, a *agent.Agent)
}
