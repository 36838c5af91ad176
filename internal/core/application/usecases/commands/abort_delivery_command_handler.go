package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/order"
)

// AbortDeliveryCommandHandler unlinks the agent of a Dispatched order, puts
// the order back to Confirmed and the agent back to Available, atomically.
// The order shows up in pending deliveries again.
type AbortDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
}

func NewAbortDeliveryCommandHandler(uowFactory UoWFactory, notifier Notifier) AbortDeliveryCommandHandler {
	return AbortDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle returns the re-queued order and the released agent.
func (h AbortDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd AbortDeliveryCommand,
) (*order.Order, *agent.Agent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	previous := o.Status()
	agentID, err := o.AbortDelivery(now)
	if err != nil {
		return nil, nil, err
	}

	a, err := agentRepo.GetForUpdate(ctx, agentID)
	if err != nil {
		return nil, nil, err
	}
	if err = a.Release(now); err != nil {
		return nil, nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, nil, err
	}
	if err = agentRepo.Update(ctx, a); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	h.notifier.OrderStatusChanged(ctx, o, previous)
	return o, a, nil
}
