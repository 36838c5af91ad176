package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// UpdateOrderCommandHandler applies instruction and status edits in one
// transaction. Status edits follow the order transition table: DISPATCHED goes
// through the assignment matcher, DELIVERED releases the agent.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.AssignmentMatcher
	notifier   Notifier
}

func NewUpdateOrderCommandHandler(
	uowFactory UoWFactory,
	matcher services.AssignmentMatcher,
	notifier Notifier,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		notifier:   notifier,
	}
}

func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = ensureVisible(o, cmd.Requester()); err != nil {
		return nil, err
	}

	now := time.Now()
	if instructions := cmd.Instructions(); instructions != nil {
		if err = o.ChangeInstructions(*instructions, now); err != nil {
			return nil, err
		}
	}

	var agentRepo ports.AgentRepository
	change := statusChange{previous: o.Status()}
	if status := cmd.Status(); status != nil {
		agentRepo = uow.AgentRepository()
		change, err = applyStatus(ctx, agentRepo, h.matcher, o, *status, cmd.AgentID(), now)
		if err != nil {
			return nil, err
		}
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
	if change.dispatched(o) {
		h.notifier.AgentAssigned(ctx, o, change.agent)
	}
	return o, nil
}
