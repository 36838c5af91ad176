package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// UpdateDeliveryStatusCommandHandler is the delivery status tracker.
//
// DELIVERED stamps the actual delivery time and frees the agent. DISPATCHED
// cannot be set here because it needs an agent; use AssignAgentCommand.
// Repeating the current status only applies the estimate and notifies nobody.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
}

func NewUpdateDeliveryStatusCommandHandler(uowFactory UoWFactory, notifier Notifier) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDeliveryStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if eta := cmd.EstimatedDeliveryTime(); eta != nil {
		if err = o.RescheduleDelivery(*eta, now); err != nil {
			return nil, err
		}
	}

	change, err := applyStatus(ctx, agentRepo, services.NewAssignmentMatcher(), o, cmd.Status(), nil, now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if change.agent != nil {
		if err = agentRepo.Update(ctx, change.agent); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if change.changed(o) {
		h.notifier.OrderStatusChanged(ctx, o, change.previous)
	}
	return o, nil
}
